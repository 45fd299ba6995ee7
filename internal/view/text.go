package view

import (
	"fmt"
	"strings"

	"github.com/drakos74/free-iris/internal/emoji"
	"github.com/drakos74/free-iris/internal/form"
	"github.com/drakos74/free-iris/internal/model"
)

// Text renders the state as a plain text message.
func Text(s form.State) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s api %s\n", emoji.MapHealth(s.Health), HealthLabel(s.Health)))
	for _, field := range model.Fields {
		value := s.Form.Get(field)
		if value == "" {
			value = "-"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", field.Label(), value))
	}

	status := emoji.MapStatus(s.Prediction.Status)
	switch {
	case s.Prediction.Loading():
		sb.WriteString(fmt.Sprintf("%s classifying ...\n", status))
	case s.Prediction.Error != "":
		sb.WriteString(fmt.Sprintf("%s %s\n", status, s.Prediction.Error))
	case s.Prediction.Result != nil:
		p := s.Prediction.Result
		sb.WriteString(fmt.Sprintf("%s %s %s (class %d) %.1f%%\n",
			status, emoji.MapSpecies(p.PredictedClass()), p.Species, p.PredictedClass(), p.ConfidencePercent()))
		for _, probability := range p.Probabilities() {
			marker := ""
			if probability.Predicted {
				marker = " *"
			}
			sb.WriteString(fmt.Sprintf("  %s: %.1f%%%s\n", probability.Species, probability.Value*100, marker))
		}
	}

	status = emoji.MapStatus(s.Benchmark.Status)
	switch {
	case s.Benchmark.Loading():
		sb.WriteString(fmt.Sprintf("%s fetching benchmark ...\n", status))
	case s.Benchmark.Error != "":
		sb.WriteString(fmt.Sprintf("%s %s\n", status, s.Benchmark.Error))
	case s.Benchmark.Result != nil:
		b := s.Benchmark.Result
		sb.WriteString(fmt.Sprintf("%s %s speedup %.2fx | efficiency %.1f%% | %s %d cores | %s saved %.2fs\n",
			status, emoji.Rocket, b.Summary.Speedup, b.Summary.Efficiency*100,
			emoji.Chip, b.Summary.CPUCoresUsed,
			emoji.Clock, b.Summary.TimeSaved))
		sb.WriteString(fmt.Sprintf("sequential %.3fs %.2fMB | parallel %.3fs %.2fMB\n",
			b.Sequential.TotalTime, b.Sequential.MemoryUsed,
			b.Parallel.TotalTime, b.Parallel.MemoryUsed))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
