package model

import (
	"fmt"
	"math"

	iristime "github.com/drakos74/free-iris/internal/time"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Species are the class labels of the iris dataset, indexed by predicted class.
var Species = []string{"Setosa", "Versicolor", "Virginica"}

// SpeciesName returns the label for the given class index.
func SpeciesName(class int) string {
	if class >= 0 && class < len(Species) {
		return Species[class]
	}
	return fmt.Sprintf("Species %d", class)
}

// Prediction is the classification returned by the prediction service.
type Prediction struct {
	Species        string             `json:"predicted_species"`
	Class          *int               `json:"predicted_class"`
	Confidence     *float64           `json:"confidence"`
	AllPredictions []float64          `json:"all_predictions,omitempty"`
	Timestamp      iristime.Timestamp `json:"timestamp"`
}

// Validate checks that the required fields are present.
func (p *Prediction) Validate() error {
	if p.Species == "" {
		return fmt.Errorf("missing field: predicted_species")
	}
	if p.Class == nil {
		return fmt.Errorf("missing field: predicted_class")
	}
	if p.Confidence == nil {
		return fmt.Errorf("missing field: confidence")
	}
	if c := *p.Confidence; math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("confidence out of range: %v", c)
	}
	if !p.Timestamp.IsSet() {
		return fmt.Errorf("missing field: timestamp")
	}
	return nil
}

// PredictedClass returns the class index, -1 if absent.
func (p *Prediction) PredictedClass() int {
	if p.Class == nil {
		return -1
	}
	return *p.Class
}

// ConfidencePercent returns the confidence as a percentage.
func (p *Prediction) ConfidencePercent() float64 {
	if p.Confidence == nil {
		return 0
	}
	return *p.Confidence * 100
}

// Probability is the probability of a single species.
type Probability struct {
	Species   string
	Value     float64
	Predicted bool
}

// Probabilities labels the optional per-class probabilities.
// It returns nil when the service did not send them.
func (p *Prediction) Probabilities() []Probability {
	if len(p.AllPredictions) == 0 {
		return nil
	}
	class := p.PredictedClass()
	pp := make([]Probability, len(p.AllPredictions))
	for i, v := range p.AllPredictions {
		pp[i] = Probability{
			Species:   SpeciesName(i),
			Value:     v,
			Predicted: i == class,
		}
	}
	return pp
}

// MostLikely returns the index of the highest probability, -1 without probabilities.
func (p *Prediction) MostLikely() int {
	if len(p.AllPredictions) == 0 {
		return -1
	}
	return floats.MaxIdx(p.AllPredictions)
}

// Consistent reports whether the probability vector agrees with the predicted class
// and sums to one within the given tolerance.
func (p *Prediction) Consistent(tol float64) bool {
	if len(p.AllPredictions) == 0 {
		return true
	}
	if p.MostLikely() != p.PredictedClass() {
		return false
	}
	return scalar.EqualWithinAbs(floats.Sum(p.AllPredictions), 1, tol)
}
