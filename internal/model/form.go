package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Field is the name of one of the four measurement inputs.
type Field string

const (
	SepalLength Field = "sepal_length"
	SepalWidth  Field = "sepal_width"
	PetalLength Field = "petal_length"
	PetalWidth  Field = "petal_width"
)

// Fields lists the measurement inputs in display order.
var Fields = []Field{SepalLength, SepalWidth, PetalLength, PetalWidth}

// ParseField validates the given field name.
func ParseField(s string) (Field, error) {
	f := Field(strings.TrimSpace(s))
	for _, field := range Fields {
		if f == field {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown field: '%s'", s)
}

// Label returns the human readable name of the field.
func (f Field) Label() string {
	switch f {
	case SepalLength:
		return "Sepal length"
	case SepalWidth:
		return "Sepal width"
	case PetalLength:
		return "Petal length"
	case PetalWidth:
		return "Petal width"
	}
	return string(f)
}

// Form holds the measurements as the operator typed them.
type Form struct {
	SepalLength string `json:"sepal_length"`
	SepalWidth  string `json:"sepal_width"`
	PetalLength string `json:"petal_length"`
	PetalWidth  string `json:"petal_width"`
}

// Example is the fixed measurement set offered to the operator.
func Example() Form {
	return Form{
		SepalLength: "5.1",
		SepalWidth:  "3.5",
		PetalLength: "1.4",
		PetalWidth:  "0.2",
	}
}

// Get returns the raw value of the given field.
func (f Form) Get(field Field) string {
	switch field {
	case SepalLength:
		return f.SepalLength
	case SepalWidth:
		return f.SepalWidth
	case PetalLength:
		return f.PetalLength
	case PetalWidth:
		return f.PetalWidth
	}
	return ""
}

// Set returns a copy of the form with the given field replaced.
func (f Form) Set(field Field, value string) (Form, error) {
	switch field {
	case SepalLength:
		f.SepalLength = value
	case SepalWidth:
		f.SepalWidth = value
	case PetalLength:
		f.PetalLength = value
	case PetalWidth:
		f.PetalWidth = value
	default:
		return f, fmt.Errorf("unknown field: '%s'", field)
	}
	return f, nil
}

// Complete reports whether every field has a value.
func (f Form) Complete() bool {
	for _, field := range Fields {
		if strings.TrimSpace(f.Get(field)) == "" {
			return false
		}
	}
	return true
}

// InvalidFieldError is returned when a field cannot be coerced to a number.
type InvalidFieldError struct {
	Field Field
	Value string
}

func (e *InvalidFieldError) Error() string {
	if strings.TrimSpace(e.Value) == "" {
		return fmt.Sprintf("%s is required", e.Field.Label())
	}
	return fmt.Sprintf("%s is not a number: '%s'", e.Field.Label(), e.Value)
}

// Measurement coerces the form into numbers.
// Empty or non-numeric fields are rejected, so they never reach the prediction service.
func (f Form) Measurement() (Measurement, error) {
	var values [4]float64
	for i, field := range Fields {
		raw := f.Get(field)
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Measurement{}, &InvalidFieldError{Field: field, Value: raw}
		}
		values[i] = v
	}
	return Measurement{
		SepalLength: values[0],
		SepalWidth:  values[1],
		PetalLength: values[2],
		PetalWidth:  values[3],
	}, nil
}

// Coerce converts every field without validation.
// Unparsable values become NaN.
func (f Form) Coerce() Measurement {
	coerce := func(s string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return math.NaN()
		}
		return v
	}
	return Measurement{
		SepalLength: coerce(f.SepalLength),
		SepalWidth:  coerce(f.SepalWidth),
		PetalLength: coerce(f.PetalLength),
		PetalWidth:  coerce(f.PetalWidth),
	}
}

// Measurement is the request body of a prediction, in centimeters.
type Measurement struct {
	SepalLength float64 `json:"sepal_length"`
	SepalWidth  float64 `json:"sepal_width"`
	PetalLength float64 `json:"petal_length"`
	PetalWidth  float64 `json:"petal_width"`
}
