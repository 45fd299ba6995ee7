package form

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/drakos74/free-iris/client"
	"github.com/drakos74/free-iris/internal/concurrent"
	"github.com/drakos74/free-iris/internal/model"
	"github.com/rs/zerolog/log"
)

// ErrInFlight is returned when a request of the same kind has not settled yet.
var ErrInFlight = errors.New("request already in flight")

// ErrClosed is returned when the controller has been torn down.
var ErrClosed = errors.New("form is closed")

// CompareError carries the independent failures of a comparison.
type CompareError struct {
	Prediction error
	Benchmark  error
}

func (e *CompareError) Error() string {
	switch {
	case e.Prediction != nil && e.Benchmark != nil:
		return fmt.Sprintf("prediction: %s; benchmark: %s", e.Prediction.Error(), e.Benchmark.Error())
	case e.Prediction != nil:
		return fmt.Sprintf("prediction: %s", e.Prediction.Error())
	default:
		return fmt.Sprintf("benchmark: %s", e.Benchmark.Error())
	}
}

// Controller owns the state of a single form and performs the calls to the prediction service.
type Controller struct {
	id       string
	service  client.Service
	mutex    *sync.RWMutex
	state    State
	closed   bool
	lastSeen time.Time
}

// NewController creates a new form controller backed by the given service.
func NewController(id string, service client.Service) *Controller {
	return &Controller{
		id:       id,
		service:  service,
		mutex:    new(sync.RWMutex),
		state:    NewState(),
		lastSeen: time.Now(),
	}
}

// ID returns the session key of the form.
func (c *Controller) ID() string {
	return c.id
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.state
}

// apply moves the controller to the next state.
// Updates arriving after Close are dropped.
func (c *Controller) apply(next func(s State) State) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		log.Debug().Str("form", c.id).Msg("dropping update for closed form")
		return false
	}
	c.state = next(c.state)
	c.lastSeen = time.Now()
	return true
}

// CheckHealth probes the service and records the outcome.
func (c *Controller) CheckHealth(ctx context.Context) model.Health {
	health := c.service.Health(ctx)
	c.apply(func(s State) State {
		return s.WithHealth(health)
	})
	log.Info().Str("form", c.id).Str("health", string(health)).Msg("health check")
	return health
}

// Update stores the raw value of a field without validating it.
func (c *Controller) Update(field model.Field, value string) error {
	var err error
	c.apply(func(s State) State {
		var next State
		next, err = s.WithField(field, value)
		return next
	})
	return err
}

// Clear resets the fields and all results.
func (c *Controller) Clear() {
	c.apply(func(s State) State {
		return s.Cleared()
	})
}

// LoadExample fills the fields with the example measurements.
func (c *Controller) LoadExample() {
	c.apply(func(s State) State {
		return s.WithExample()
	})
}

// start checks the preconditions and moves into the loading state in one step,
// returning the measurement to submit, or the validation error.
func (c *Controller) start(begin func(s State) (State, error)) (m model.Measurement, invalid error, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.closed {
		return model.Measurement{}, nil, ErrClosed
	}
	next, err := begin(c.state)
	if err != nil {
		return model.Measurement{}, nil, err
	}
	c.state = next
	c.lastSeen = time.Now()
	m, invalid = c.state.Form.Measurement()
	return m, invalid, nil
}

// Submit requests a single prediction for the current fields.
// On success the result replaces any previous one, on failure the previous result is cleared.
func (c *Controller) Submit(ctx context.Context) error {
	m, invalid, err := c.start(func(s State) (State, error) {
		if s.Prediction.Loading() {
			return s, ErrInFlight
		}
		return s.PredictionLoading(), nil
	})
	if err != nil {
		return err
	}

	p, err := c.predict(ctx, m, invalid)
	c.apply(func(s State) State {
		return s.PredictionSettled(p, err)
	})
	c.logOutcome("predict", err)
	return err
}

// Compare requests a prediction and the benchmark report concurrently.
// Each outcome is applied to its own slot as soon as it settles,
// a failure of one never affects the other.
func (c *Controller) Compare(ctx context.Context) error {
	m, invalid, err := c.start(func(s State) (State, error) {
		if s.Comparing || s.Prediction.Loading() || s.Benchmark.Loading() {
			return s, ErrInFlight
		}
		return s.CompareStarted(), nil
	})
	if err != nil {
		return err
	}

	predictions := concurrent.Settle(ctx, func(ctx context.Context) (*model.Prediction, error) {
		return c.predict(ctx, m, invalid)
	})
	benchmarks := concurrent.Settle(ctx, c.service.Benchmark)

	compareErr := new(CompareError)
	for predictions != nil || benchmarks != nil {
		select {
		case outcome := <-predictions:
			predictions = nil
			compareErr.Prediction = outcome.Err
			c.apply(func(s State) State {
				return s.PredictionSettled(outcome.Value, outcome.Err)
			})
			c.logOutcome("predict", outcome.Err)
		case outcome := <-benchmarks:
			benchmarks = nil
			compareErr.Benchmark = outcome.Err
			c.apply(func(s State) State {
				return s.BenchmarkSettled(outcome.Value, outcome.Err)
			})
			c.logOutcome("benchmark", outcome.Err)
		}
	}
	c.apply(func(s State) State {
		return s.CompareFinished()
	})

	if compareErr.Prediction != nil || compareErr.Benchmark != nil {
		return compareErr
	}
	return nil
}

// predict calls the service, unless the fields failed validation.
func (c *Controller) predict(ctx context.Context, m model.Measurement, invalid error) (*model.Prediction, error) {
	if invalid != nil {
		return nil, invalid
	}
	return c.service.Predict(ctx, m)
}

func (c *Controller) logOutcome(action string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("form", c.id).Str("action", action).Msg("request failed")
		return
	}
	log.Info().Str("form", c.id).Str("action", action).Msg("request completed")
}

// Close tears the form down, any request settling afterwards is discarded.
func (c *Controller) Close() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.closed = true
}

// idle returns how long the form has not been used.
func (c *Controller) idle(now time.Time) time.Duration {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return now.Sub(c.lastSeen)
}
