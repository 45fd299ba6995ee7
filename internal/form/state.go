package form

import (
	"errors"
	"fmt"

	"github.com/drakos74/free-iris/client/iris"
	"github.com/drakos74/free-iris/internal/model"
)

// Slot holds the lifecycle of one kind of request and its latest outcome.
type Slot[T any] struct {
	Status model.Status `json:"status"`
	Result *T           `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// Loading reports whether a request for the slot is in flight.
func (s Slot[T]) Loading() bool {
	return s.Status == model.Loading
}

// Empty reports whether there is nothing to show for the slot.
func (s Slot[T]) Empty() bool {
	return s.Result == nil && s.Error == "" && s.Status != model.Loading
}

func (s Slot[T]) loading() Slot[T] {
	return Slot[T]{Status: model.Loading}
}

func (s Slot[T]) settled(v *T, err error, action string) Slot[T] {
	if err != nil {
		return Slot[T]{Status: model.Failure, Error: describe(action, err)}
	}
	return Slot[T]{Status: model.Success, Result: v}
}

// cleared drops result and error, but keeps an in-flight request visible.
func (s Slot[T]) cleared() Slot[T] {
	if s.Status == model.Loading {
		return Slot[T]{Status: model.Loading}
	}
	return Slot[T]{Status: model.Idle}
}

// State is the complete state of a form.
// Transitions never mutate the receiver, they return the next state.
type State struct {
	Form       model.Form                  `json:"form"`
	Health     model.Health                `json:"health"`
	Prediction Slot[model.Prediction]      `json:"prediction"`
	Benchmark  Slot[model.BenchmarkReport] `json:"benchmark"`
	Comparing  bool                        `json:"comparing"`
}

// NewState creates the initial state.
func NewState() State {
	return State{
		Health:     model.Unknown,
		Prediction: Slot[model.Prediction]{Status: model.Idle},
		Benchmark:  Slot[model.BenchmarkReport]{Status: model.Idle},
	}
}

// WithField stores the raw value of the field.
func (s State) WithField(field model.Field, value string) (State, error) {
	f, err := s.Form.Set(field, value)
	if err != nil {
		return s, err
	}
	s.Form = f
	return s, nil
}

// Cleared resets the form and every result, the health status is kept.
func (s State) Cleared() State {
	s.Form = model.Form{}
	s.Prediction = s.Prediction.cleared()
	s.Benchmark = s.Benchmark.cleared()
	return s
}

// WithExample loads the example measurements, results are kept.
func (s State) WithExample() State {
	s.Form = model.Example()
	return s
}

// WithHealth records the latest health check.
func (s State) WithHealth(health model.Health) State {
	s.Health = health
	return s
}

// PredictionLoading starts a prediction request, dropping any previous outcome.
func (s State) PredictionLoading() State {
	s.Prediction = s.Prediction.loading()
	return s
}

// PredictionSettled applies the outcome of a prediction request.
func (s State) PredictionSettled(p *model.Prediction, err error) State {
	s.Prediction = s.Prediction.settled(p, err, "predict")
	return s
}

// BenchmarkLoading starts a benchmark request, dropping any previous outcome.
func (s State) BenchmarkLoading() State {
	s.Benchmark = s.Benchmark.loading()
	return s
}

// BenchmarkSettled applies the outcome of a benchmark request.
func (s State) BenchmarkSettled(b *model.BenchmarkReport, err error) State {
	s.Benchmark = s.Benchmark.settled(b, err, "fetch benchmark")
	return s
}

// CompareStarted puts both slots in flight.
func (s State) CompareStarted() State {
	s = s.PredictionLoading().BenchmarkLoading()
	s.Comparing = true
	return s
}

// CompareFinished marks the end of a comparison, once both slots settled.
func (s State) CompareFinished() State {
	s.Comparing = false
	return s
}

// CanCompare reports whether the compare trigger should be offered to the operator.
func (s State) CanCompare() bool {
	return !s.Comparing && s.Health == model.Healthy && s.Form.Complete()
}

// describe turns an error into the message shown to the operator.
func describe(action string, err error) string {
	var invalid *model.InvalidFieldError
	switch {
	case errors.As(err, &invalid):
		return fmt.Sprintf("could not %s: %s", action, invalid.Error())
	case iris.IsTransport(err):
		return fmt.Sprintf("could not %s: prediction service unreachable", action)
	case iris.StatusCode(err) > 0:
		return fmt.Sprintf("could not %s: service returned status %d", action, iris.StatusCode(err))
	}
	return fmt.Sprintf("could not %s: %s", action, err.Error())
}
