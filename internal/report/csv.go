package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVGenerator renders a Data as a flat, section-delimited CSV, mirroring
// the teacher's CSVGenerator.writeFlowCSV layout (blank-line-separated
// sections rather than one rigid table).
type CSVGenerator struct {
	BaseGenerator
}

func NewCSVGenerator() *CSVGenerator { return &CSVGenerator{} }

func (g *CSVGenerator) Format() string { return "csv" }

type csvWriter struct {
	w   *csv.Writer
	err error
}

func (cw *csvWriter) Write(record []string) {
	if cw.err != nil {
		return
	}
	cw.err = cw.w.Write(record)
}

func (cw *csvWriter) Flush() {
	if cw.err != nil {
		return
	}
	cw.w.Flush()
	cw.err = cw.w.Error()
}

func (g *CSVGenerator) Generate(data *Data) ([]byte, error) {
	var buf bytes.Buffer
	cw := &csvWriter{w: csv.NewWriter(&buf)}

	cw.Write([]string{"# " + g.title(data)})
	cw.Write([]string{""})

	cw.Write([]string{"Run Summary"})
	cw.Write([]string{"Variant", data.Variant})
	cw.Write([]string{"Seed", fmt.Sprintf("%d", data.Seed)})
	cw.Write([]string{"Iterations", fmt.Sprintf("%d", data.Iterations)})
	cw.Write([]string{"Gamma", fmt.Sprintf("%.4f", data.Gamma)})
	cw.Write([]string{"Deterministic Cost", fmt.Sprintf("%.4f", data.DeterministicCost)})
	if data.HasStochastic {
		cw.Write([]string{"Stochastic Cost", fmt.Sprintf("%.4f", data.StochasticCost)})
	}
	cw.Write([]string{""})

	cw.Write([]string{"Routes"})
	cw.Write([]string{"Route", "Nodes", "Travel Time", "Cost", "Stochastic Cost"})
	for _, r := range data.Routes {
		stoch := ""
		if r.HasStochastic {
			stoch = fmt.Sprintf("%.4f", r.StochasticCost)
		}
		cw.Write([]string{
			fmt.Sprintf("%d", r.Index),
			formatNodeIDs(r.NodeIDs),
			fmt.Sprintf("%.4f", r.TravelTime),
			fmt.Sprintf("%.4f", r.Cost),
			stoch,
		})
	}

	cw.Flush()
	if cw.err != nil {
		return nil, fmt.Errorf("report: csv write: %w", cw.err)
	}
	return buf.Bytes(), nil
}

func formatNodeIDs(ids []int64) string {
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += "->"
		}
		s += fmt.Sprintf("%d", id)
	}
	return s
}
