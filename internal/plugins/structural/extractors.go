package structural

import (
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const foundationSystemPrompt = `You are an expert in analyzing construction documents for foundation systems.
Extract all information related to foundation systems from the provided text.

Focus on:
1. Foundation types (slab-on-grade, mat, spread footings, piles)
2. Concrete specifications (strength, mix design, reinforcement)
3. Dimensions and depths
4. Soil bearing capacity and assumptions
5. Waterproofing and drainage systems
6. Special foundation elements (grade beams, pile caps)

Return the information as a structured JSON object with appropriate nested properties.
Only include information that is explicitly mentioned in the text.
If information is not available, use null values.`

const framingSystemPrompt = `You are an expert in analyzing construction documents for structural framing systems.
Extract all information related to structural framing from the provided text.

Focus on:
1. Structural steel elements (columns, beams, girders, joists)
2. Concrete structural elements (columns, beams, slabs)
3. Wood framing elements (studs, joists, rafters, trusses)
4. Connection types and details
5. Material specifications and grades
6. Load-bearing elements and systems
7. Lateral force resisting systems (bracing, shear walls)

Return the information as a structured JSON object with appropriate nested properties.
Only include information that is explicitly mentioned in the text.
If information is not available, use null values.`

const loadsSystemPrompt = `You are an expert in analyzing construction documents for structural load requirements.
Extract all information related to structural loads from the provided text.

Focus on:
1. Design loads (dead, live, snow, wind, seismic)
2. Load combinations and factors
3. Deflection and serviceability criteria
4. Building code references and requirements
5. Special loading conditions
6. Load path considerations

Return the information as a structured JSON object with appropriate nested properties.
Only include information that is explicitly mentioned in the text.
If information is not available, use null values.`

// NewFoundationAnalysis creates the prompt-only foundation systems plugin.
func NewFoundationAnalysis(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "structural.foundation_analysis",
		Name:               "Foundation Analysis",
		Description:        "Analyzes foundation specifications and extracts structured data about foundation systems.",
		Category:           model.CategoryStructural,
		Version:            "1.0.0",
		Price:              299.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}, foundationSystemPrompt, ai, opts)
}

// NewFramingAnalysis creates the prompt-only structural framing plugin.
func NewFramingAnalysis(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "structural.framing_analysis",
		Name:               "Structural Framing Analysis",
		Description:        "Analyzes structural framing specifications and extracts structured data about columns, beams, trusses, and lateral systems.",
		Category:           model.CategoryStructural,
		Version:            "1.0.0",
		Price:              349.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}, framingSystemPrompt, ai, opts)
}

// NewLoadAnalysis creates the prompt-only structural load plugin.
func NewLoadAnalysis(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "structural.load_analysis",
		Name:               "Structural Load Analysis",
		Description:        "Analyzes structural load specifications and extracts structured data about design loads, load combinations, and load paths.",
		Category:           model.CategoryStructural,
		Version:            "1.0.0",
		Price:              249.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}, loadsSystemPrompt, ai, opts)
}
