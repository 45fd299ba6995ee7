package form

import (
	"context"
	"sync/atomic"

	"github.com/drakos74/free-iris/internal/model"
	iristime "github.com/drakos74/free-iris/internal/time"
)

type mockService struct {
	health      model.Health
	predict     func(ctx context.Context, m model.Measurement) (*model.Prediction, error)
	benchmark   func(ctx context.Context) (*model.BenchmarkReport, error)
	predictions int64
	benchmarks  int64
}

func (m *mockService) Health(ctx context.Context) model.Health {
	return m.health
}

func (m *mockService) Predict(ctx context.Context, measurement model.Measurement) (*model.Prediction, error) {
	atomic.AddInt64(&m.predictions, 1)
	return m.predict(ctx, measurement)
}

func (m *mockService) Benchmark(ctx context.Context) (*model.BenchmarkReport, error) {
	atomic.AddInt64(&m.benchmarks, 1)
	return m.benchmark(ctx)
}

func (m *mockService) calls() (int64, int64) {
	return atomic.LoadInt64(&m.predictions), atomic.LoadInt64(&m.benchmarks)
}

func newPrediction(species string, class int) *model.Prediction {
	confidence := 0.9
	ts, _ := iristime.Parse("2024-05-01T10:20:30Z")
	return &model.Prediction{
		Species:    species,
		Class:      &class,
		Confidence: &confidence,
		Timestamp:  ts,
	}
}

func newReport(speedup float64) *model.BenchmarkReport {
	return &model.BenchmarkReport{
		Summary:    &model.Summary{Speedup: speedup, Efficiency: 0.5, CPUCoresUsed: 4, TimeSaved: 1},
		Sequential: &model.Run{TotalTime: 2, CPUCount: 1},
		Parallel:   &model.Run{TotalTime: 1, CPUCount: 4},
	}
}

func succeed(p *model.Prediction) func(ctx context.Context, m model.Measurement) (*model.Prediction, error) {
	return func(ctx context.Context, m model.Measurement) (*model.Prediction, error) {
		return p, nil
	}
}

func fail(err error) func(ctx context.Context, m model.Measurement) (*model.Prediction, error) {
	return func(ctx context.Context, m model.Measurement) (*model.Prediction, error) {
		return nil, err
	}
}

func report(b *model.BenchmarkReport, err error) func(ctx context.Context) (*model.BenchmarkReport, error) {
	return func(ctx context.Context) (*model.BenchmarkReport, error) {
		return b, err
	}
}
