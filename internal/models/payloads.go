package models

// StatBlock holds the five KPI scalars displayed at the top of the
// dashboard. "Today" is the creation date of the freshest ingested task,
// not the viewer's clock.
type StatBlock struct {
	CompletedToday  int `json:"completed_today"`
	CurrentlyQueued int `json:"currently_queued"`
	CompletedMonth  int `json:"completed_month"`
	AvgPerDay       int `json:"avg_per_day"`
	AvgPerMonth     int `json:"avg_per_month"`
}

// ChartSeries is one named series of a categorical chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Color  string    `json:"color,omitempty"`
	Values []float64 `json:"values"`
}

// RefLine is a horizontal reference value drawn over a chart.
type RefLine struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"`
}

// ChartPayload is the render-ready shape for bar, line, and pie views.
// Labels are the category axis; Colors, when present, are per-label
// (pie slices); Text, when present, are per-label display strings
// (percentages, counts).
type ChartPayload struct {
	Title    string        `json:"title"`
	Labels   []string      `json:"labels"`
	Series   []ChartSeries `json:"series"`
	Colors   []string      `json:"colors,omitempty"`
	Text     []string      `json:"text,omitempty"`
	RefLines []RefLine     `json:"ref_lines,omitempty"`
	YMax     float64       `json:"y_max,omitempty"`
}

// TablePayload is an ordered table of string cells under named columns.
type TablePayload struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// RankedOptions is the ordered list of encoded "N. PART" selections for a
// dropdown, with the top-ranked entry as the default.
type RankedOptions struct {
	Options []string `json:"options"`
	Default string   `json:"default"`
}

// DistributionPayload is the duration histogram for one ranked task, with
// the mean and median as reference values.
type DistributionPayload struct {
	Title     string    `json:"title"`
	BinEdges  []float64 `json:"bin_edges"` // len = bins+1
	Counts    []int     `json:"counts"`
	MeanSecs  float64   `json:"mean_s"`
	MedianSec float64   `json:"median_s"`
	Completed int       `json:"completed"`
	TaskType  string    `json:"task_type"`
}

// DriverTaskAverage is one driver's averages for a selected ranked task.
type DriverTaskAverage struct {
	Driver      string  `json:"driver"`
	Color       string  `json:"color"`
	AvgDuration float64 `json:"avg_duration_mins"`
	AvgDistance float64 `json:"avg_distance"`
	TimesDone   int     `json:"times_done"`
}

// TaskAveragesPayload pairs per-driver duration and distance averages with
// the across-driver means used as reference lines.
type TaskAveragesPayload struct {
	Title        string              `json:"title"`
	Drivers      []DriverTaskAverage `json:"drivers"`
	MeanDuration float64             `json:"mean_duration_mins"`
	MeanDistance float64             `json:"mean_distance"`
}
