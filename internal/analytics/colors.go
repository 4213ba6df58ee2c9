package analytics

import (
	"errors"

	"github.com/logiboard/tasks-backend-go/internal/models"
)

// ErrPaletteExhausted is raised when the data carries more distinct
// drivers than the palette has slots. Wrapping around would attribute two
// drivers to one color, so this is fatal, not a fallback.
var ErrPaletteExhausted = errors.New("driver palette supports at most 10 distinct drivers")

// driverPalette is the fixed qualitative palette assigned to drivers in
// first-appearance order.
var driverPalette = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// taskTypeColors are the preset per-type colors used by the type-split
// bar chart and the task-type pie.
var taskTypeColors = map[string]string{
	"F/G Put Away":   "#60386C",
	"Replenishment":  "#C4B5C8",
	"Container Move": "#9A5EAC",
	"FG Return":      "#2D457B",
	"Unknown":        "#808080",
}

// AssignDriverColors maps each distinct driver, in order of first
// appearance in the table, to a palette entry. More drivers than palette
// slots is a configuration error.
func AssignDriverColors(tasks []models.Task) (map[string]string, error) {
	colors := make(map[string]string)
	var order []string
	for _, t := range tasks {
		if _, seen := colors[t.Driver]; seen {
			continue
		}
		if len(order) == len(driverPalette) {
			return nil, ErrPaletteExhausted
		}
		colors[t.Driver] = driverPalette[len(order)]
		order = append(order, t.Driver)
	}
	return colors, nil
}
