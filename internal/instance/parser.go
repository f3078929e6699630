// Package instance reads and writes VRP-STW-ST problem instance files and
// synthesizes soft time windows for instances that do not yet carry them.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"vrpstw/internal/vrp"
)

// Row is one whitespace-delimited instance line: x, y, demand, open, close.
// Open is carried through for round-tripping (Write) even though the search
// engine only ever reads Close off the built vrp.Node.
type Row struct {
	X, Y   float64
	Demand float64
	Open   float64
	Close  float64
}

// Parse reads an instance file from r and returns its nodes in file order,
// node 0 being the depot. Importance is derived as demand_i / sum(demand)
// over every row including the depot, matching util.readfile. The depot's
// Close is forced to +Inf regardless of what the file contains.
func Parse(r io.Reader) ([]*vrp.Node, error) {
	rows, err := parseRows(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("instance: empty file")
	}

	var totalDemand float64
	for _, row := range rows {
		totalDemand += row.Demand
	}

	nodes := make([]*vrp.Node, len(rows))
	for i, row := range rows {
		close := row.Close
		if i == 0 {
			close = math.Inf(1)
		}
		importance := 0.0
		if totalDemand != 0 {
			importance = row.Demand / totalDemand
		}
		nodes[i] = &vrp.Node{
			ID:         int64(i),
			X:          row.X,
			Y:          row.Y,
			Close:      close,
			Demand:     row.Demand,
			Importance: importance,
		}
	}
	return nodes, nil
}

// ParseFile opens path and delegates to Parse.
func ParseFile(path string) ([]*vrp.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

func parseRows(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tokens := strings.Fields(line)
		if len(tokens) < 5 {
			return nil, fmt.Errorf("instance: line %d: expected 5 fields, got %d", lineNo, len(tokens))
		}
		row, err := parseRow(tokens)
		if err != nil {
			return nil, fmt.Errorf("instance: line %d: %w", lineNo, err)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("instance: scan: %w", err)
	}
	return rows, nil
}

func parseRow(tokens []string) (Row, error) {
	x, err := strconv.ParseFloat(tokens[0], 64)
	if err != nil {
		return Row{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(tokens[1], 64)
	if err != nil {
		return Row{}, fmt.Errorf("y: %w", err)
	}
	demand, err := strconv.ParseFloat(tokens[2], 64)
	if err != nil {
		return Row{}, fmt.Errorf("demand: %w", err)
	}
	open, err := strconv.ParseFloat(tokens[3], 64)
	if err != nil {
		return Row{}, fmt.Errorf("open: %w", err)
	}
	close, err := strconv.ParseFloat(tokens[4], 64)
	if err != nil {
		return Row{}, fmt.Errorf("close: %w", err)
	}
	return Row{X: x, Y: y, Demand: demand, Open: open, Close: close}, nil
}

// Write serializes nodes back to the "x y demand open close" row format,
// the inverse of Parse. It is used by the time-window synthesizer to
// rewrite an instance file in place once windows have been derived.
func Write(w io.Writer, nodes []*vrp.Node, open []float64) error {
	if len(open) != len(nodes) {
		return fmt.Errorf("instance: open slice length %d does not match %d nodes", len(open), len(nodes))
	}
	bw := bufio.NewWriter(w)
	for i, n := range nodes {
		if _, err := fmt.Fprintf(bw, "%g  %g  %g  %g  %g\n", n.X, n.Y, n.Demand, open[i], n.Close); err != nil {
			return fmt.Errorf("instance: write row %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// WriteFile truncates and rewrites path with nodes and their open times.
func WriteFile(path string, nodes []*vrp.Node, open []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("instance: create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, nodes, open)
}
