// Package report renders a finished search Result into CSV, JSON, Markdown,
// or Excel, grounded on the teacher's report-svc generator package.
package report

import "time"

// RouteData is one route of a solved instance, ready for rendering.
type RouteData struct {
	Index          int
	NodeIDs        []int64
	TravelTime     float64
	Cost           float64
	StochasticCost float64
	HasStochastic  bool
}

// Data is the generator-agnostic payload every format renders from.
type Data struct {
	RunID             string
	Variant           string
	GeneratedAt       time.Time
	Seed              int64
	Iterations        int
	Gamma             float64
	DeterministicCost float64
	StochasticCost    float64
	HasStochastic     bool
	Routes            []RouteData
}

// Generator renders Data into one output format.
type Generator interface {
	Generate(data *Data) ([]byte, error)
	Format() string
}

// BaseGenerator holds formatting helpers shared by every concrete generator.
type BaseGenerator struct{}

func (BaseGenerator) title(data *Data) string {
	if data.RunID == "" {
		return "VRP-STW-ST Search Report"
	}
	return "VRP-STW-ST Search Report — " + data.RunID
}
