package time

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// DisplayFormat is the layout used when rendering timestamps to the operator.
const DisplayFormat = "Jan _2 2006 15:04:05"

// layouts the prediction service is known to emit.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Timestamp is a point in time as reported by an external service.
// Raw keeps the text as received, so that unknown formats can still be shown.
type Timestamp struct {
	time.Time
	Raw string
}

// Parse parses the given string against the known layouts.
func Parse(s string) (Timestamp, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t, Raw: s}, nil
		}
	}
	return Timestamp{Raw: s}, errors.New("unknown time format")
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case float64:
		sec := int64(value)
		nsec := int64((value - float64(sec)) * float64(time.Second))
		t.Time = time.Unix(sec, nsec).UTC()
		t.Raw = ""
		return nil
	case string:
		// unknown layouts are kept verbatim
		*t, _ = Parse(value)
		return nil
	default:
		return errors.New("invalid timestamp")
	}
}

// IsSet reports whether the service provided any timestamp at all.
func (t Timestamp) IsSet() bool {
	return !t.Time.IsZero() || t.Raw != ""
}

// Format renders the timestamp for display.
func (t Timestamp) Format() string {
	if t.Time.IsZero() {
		return t.Raw
	}
	return t.Time.Local().Format(DisplayFormat)
}

// Duration is a time.Duration that decodes from either a string ("30s") or nanoseconds.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		var err error
		d.Duration, err = time.ParseDuration(value)
		if err != nil {
			return err
		}
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// Execute executes the given function at the specified interval until stop is closed.
func Execute(stop <-chan struct{}, interval time.Duration, exec func() error) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := exec(); err != nil {
					log.Warn().Err(err).Msg("scheduled execution failed")
				}
			case <-stop:
				log.Info().Float64("interval", interval.Seconds()).Msg("execution stopped")
				return
			}
		}
	}()
}
