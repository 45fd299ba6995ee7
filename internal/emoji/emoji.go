package emoji

import (
	"github.com/drakos74/free-iris/internal/model"
)

// https://unicode.org/emoji/charts/full-emoji-list.html
const (
	Flower   = "🌸"
	Tulip    = "🌷"
	Hibiscus = "🌺"
	Seedling = "🌱"

	Check    = "✅"
	Warning  = "⚠️"
	Error    = "🚫"
	Question = "❔"
	Loading  = "⏳"

	Rocket = "🚀"
	Chip   = "🧮"
	Clock  = "⏱"
)

// MapHealth returns the marker of the health status.
func MapHealth(h model.Health) string {
	switch h {
	case model.Healthy:
		return Check
	case model.Unhealthy:
		return Warning
	case model.Offline:
		return Error
	}
	return Question
}

// MapSpecies returns the marker of the predicted class.
func MapSpecies(class int) string {
	switch class {
	case 0:
		return Flower
	case 1:
		return Tulip
	case 2:
		return Hibiscus
	}
	return Seedling
}

// MapStatus returns the marker of a request status.
func MapStatus(s model.Status) string {
	switch s {
	case model.Loading:
		return Loading
	case model.Success:
		return Check
	case model.Failure:
		return Error
	}
	return ""
}
