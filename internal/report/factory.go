package report

import "fmt"

// New returns the Generator registered for format ("csv", "json",
// "markdown", "excel").
func New(format string) (Generator, error) {
	switch format {
	case "csv":
		return NewCSVGenerator(), nil
	case "json":
		return NewJSONGenerator(), nil
	case "markdown":
		return NewMarkdownGenerator(), nil
	case "excel":
		return NewExcelGenerator(), nil
	default:
		return nil, fmt.Errorf("report: unknown format %q", format)
	}
}
