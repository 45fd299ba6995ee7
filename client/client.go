package client

import (
	"context"

	"github.com/drakos74/free-iris/internal/model"
)

// Service is the external prediction service the form talks to.
type Service interface {
	Health(ctx context.Context) model.Health
	Predict(ctx context.Context, m model.Measurement) (*model.Prediction, error)
	Benchmark(ctx context.Context) (*model.BenchmarkReport, error)
}
