package report

import (
	"bytes"
	"fmt"
)

// MarkdownGenerator renders a Data as a GitHub-flavored Markdown document,
// grounded on the teacher's markdown generator (heading + summary table +
// per-section tables).
type MarkdownGenerator struct {
	BaseGenerator
}

func NewMarkdownGenerator() *MarkdownGenerator { return &MarkdownGenerator{} }

func (g *MarkdownGenerator) Format() string { return "markdown" }

func (g *MarkdownGenerator) Generate(data *Data) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", g.title(data))
	fmt.Fprintf(&buf, "Generated: %s\n\n", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	buf.WriteString("## Summary\n\n")
	buf.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&buf, "| Variant | %s |\n", data.Variant)
	fmt.Fprintf(&buf, "| Seed | %d |\n", data.Seed)
	fmt.Fprintf(&buf, "| Iterations | %d |\n", data.Iterations)
	fmt.Fprintf(&buf, "| Gamma | %.4f |\n", data.Gamma)
	fmt.Fprintf(&buf, "| Deterministic cost | %.4f |\n", data.DeterministicCost)
	if data.HasStochastic {
		fmt.Fprintf(&buf, "| Stochastic cost | %.4f |\n", data.StochasticCost)
	}
	buf.WriteString("\n")

	buf.WriteString("## Routes\n\n")
	buf.WriteString("| Route | Nodes | Travel time | Cost | Stochastic cost |\n|---|---|---|---|---|\n")
	for _, r := range data.Routes {
		stoch := "-"
		if r.HasStochastic {
			stoch = fmt.Sprintf("%.4f", r.StochasticCost)
		}
		fmt.Fprintf(&buf, "| %d | %s | %.4f | %.4f | %s |\n",
			r.Index, formatNodeIDs(r.NodeIDs), r.TravelTime, r.Cost, stoch)
	}

	return buf.Bytes(), nil
}
