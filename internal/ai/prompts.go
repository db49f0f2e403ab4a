package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/comparison.md
var comparisonPromptRaw string

// ComparisonTemplate is the parsed prompt for comparing two opportunities.
// Fields: .First and .Second, embedded verbatim.
var ComparisonTemplate = template.Must(template.New("comparison").Parse(comparisonPromptRaw))

// SystemInstruction is sent as the system message on every comparison.
const SystemInstruction = "Eres un asistente especializado en análisis legal y comparación de oportunidades de negocio."
