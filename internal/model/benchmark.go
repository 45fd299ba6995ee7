package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	iristime "github.com/drakos74/free-iris/internal/time"
)

// BenchmarkReport compares sequential and parallel training runs of the prediction service.
type BenchmarkReport struct {
	Summary    *Summary           `json:"summary"`
	Sequential *Run               `json:"sequential"`
	Parallel   *Run               `json:"parallel"`
	Timestamp  iristime.Timestamp `json:"timestamp"`
}

// Summary aggregates the comparison.
type Summary struct {
	Speedup      float64 `json:"speedup"`
	Efficiency   float64 `json:"efficiency"`
	CPUCoresUsed int     `json:"cpu_cores_used"`
	TimeSaved    float64 `json:"time_saved"`
}

// Run is the report of one processing mode.
type Run struct {
	TotalTime  float64          `json:"total_time"`
	MemoryUsed float64          `json:"memory_used"`
	CPUCount   int              `json:"cpu_count"`
	Results    []TrainingResult `json:"results"`
}

// TrainingResult is the training outcome of a single model.
type TrainingResult struct {
	ModelID      ModelID `json:"model_id"`
	TrainingTime float64 `json:"training_time"`
	Params       Params  `json:"params"`
}

// ModelID identifies a trained model, the service sends it either as a number or as text.
type ModelID string

func (id *ModelID) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case nil:
		*id = ""
	case float64:
		*id = ModelID(strconv.FormatFloat(value, 'f', -1, 64))
	case string:
		*id = ModelID(value)
	default:
		return fmt.Errorf("invalid model id: %s", string(b))
	}
	return nil
}

// Params are the hyper-parameters a model was trained with.
type Params struct {
	NEstimators int  `json:"n_estimators"`
	MaxDepth    *int `json:"max_depth"`
}

// Depth renders the max depth, which the service reports as null when unbounded.
func (p Params) Depth() string {
	if p.MaxDepth == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *p.MaxDepth)
}

// Validate checks that the required sections are present.
func (b *BenchmarkReport) Validate() error {
	if b.Summary == nil {
		return fmt.Errorf("missing field: summary")
	}
	if b.Sequential == nil {
		return fmt.Errorf("missing field: sequential")
	}
	if b.Parallel == nil {
		return fmt.Errorf("missing field: parallel")
	}
	return nil
}
