package view

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/drakos74/free-iris/client/iris"
	"github.com/drakos74/free-iris/internal/emoji"
	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
	iristime "github.com/drakos74/free-iris/internal/time"
	"github.com/stretchr/testify/assert"
)

func prediction() *model.Prediction {
	class := 1
	confidence := 0.875
	ts, _ := iristime.Parse("2024-05-01T10:20:30Z")
	return &model.Prediction{
		Species:        "Versicolor",
		Class:          &class,
		Confidence:     &confidence,
		AllPredictions: []float64{0.1, 0.875, 0.025},
		Timestamp:      ts,
	}
}

func benchmark() *model.BenchmarkReport {
	depth := 4
	return &model.BenchmarkReport{
		Summary: &model.Summary{Speedup: 3.456, Efficiency: 0.864, CPUCoresUsed: 4, TimeSaved: 2.5},
		Sequential: &model.Run{TotalTime: 3.5, MemoryUsed: 10.25, CPUCount: 1, Results: []model.TrainingResult{
			{ModelID: "7", TrainingTime: 0.75, Params: model.Params{NEstimators: 100, MaxDepth: &depth}},
		}},
		Parallel: &model.Run{TotalTime: 1.0, MemoryUsed: 20.5, CPUCount: 4},
	}
}

func TestPage(t *testing.T) {

	type test struct {
		state    form.State
		contains []string
		excludes []string
	}

	tests := map[string]test{
		"initial": {
			state: form.NewState(),
			contains: []string{
				"Unknown",
				"Enter the flower measurements",
				`id="compare" disabled`,
				`placeholder="e.g. 5.1"`,
				// field updates are debounced and sent one after the other
				"clearTimeout(pending[input.name])",
				"sent = sent.then(",
			},
			excludes: []string{"Speedup"},
		},
		"ready": {
			state: form.NewState().WithHealth(model.Healthy).WithExample(),
			contains: []string{
				"Connected",
				`value="5.1"`,
				`value="0.2"`,
			},
			excludes: []string{`id="compare" disabled`},
		},
		"results": {
			state: form.NewState().WithHealth(model.Healthy).WithExample().
				PredictionSettled(prediction(), nil).
				BenchmarkSettled(benchmark(), nil),
			contains: []string{
				"Versicolor",
				"Confidence: 87.5%",
				`class="predicted">Versicolor: 87.5%`,
				"Setosa: 10.0%",
				"3.46x",
				"86.4%",
				"2.50s",
				"Model 7: 0.750s (estimators: 100, depth: 4)",
				"Memory used: 20.50 MB",
			},
			excludes: []string{"Enter the flower measurements"},
		},
		"errors": {
			state: form.NewState().WithHealth(model.Offline).
				PredictionSettled(nil, &iris.StatusError{Endpoint: iris.PredictPath, Code: 500}).
				BenchmarkSettled(nil, errors.New("down")),
			contains: []string{
				"Disconnected",
				"could not predict: service returned status 500",
				"could not fetch benchmark: down",
			},
		},
		"comparing": {
			state: form.NewState().WithHealth(model.Healthy).WithExample().CompareStarted(),
			contains: []string{
				"Comparing models...",
				"Fetching benchmark data...",
				"Classifying...",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Page(&buf, tt.state)
			assert.NoError(t, err)
			html := buf.String()
			for _, s := range tt.contains {
				assert.True(t, strings.Contains(html, s), "missing %q", s)
			}
			for _, s := range tt.excludes {
				assert.False(t, strings.Contains(html, s), "unexpected %q", s)
			}
		})
	}
}

func TestText(t *testing.T) {
	s := form.NewState().WithHealth(model.Healthy).WithExample().
		PredictionSettled(prediction(), nil).
		BenchmarkSettled(benchmark(), nil)
	txt := Text(s)
	assert.Contains(t, txt, "Sepal length: 5.1")
	assert.Contains(t, txt, "Versicolor (class 1) 87.5%")
	assert.Contains(t, txt, "Versicolor: 87.5% *")
	assert.Contains(t, txt, "speedup 3.46x")

	assert.Contains(t, txt, emoji.Check+" "+emoji.Tulip+" Versicolor")
	assert.Contains(t, txt, emoji.Check+" "+emoji.Rocket+" speedup")

	failed := Text(form.NewState().CompareStarted().PredictionSettled(nil, errors.New("down")))
	assert.Contains(t, failed, emoji.Error+" could not predict: down")
	assert.Contains(t, failed, emoji.Loading+" fetching benchmark ...")

	empty := Text(form.NewState())
	assert.Contains(t, empty, "Petal width: -")
	assert.False(t, strings.HasSuffix(empty, "\n"))
}
