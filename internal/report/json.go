package report

import "encoding/json"

// JSONGenerator renders a Data as indented JSON.
type JSONGenerator struct {
	BaseGenerator
}

func NewJSONGenerator() *JSONGenerator { return &JSONGenerator{} }

func (g *JSONGenerator) Format() string { return "json" }

func (g *JSONGenerator) Generate(data *Data) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
