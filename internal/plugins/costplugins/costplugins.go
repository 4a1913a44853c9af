// Package costplugins provides the cross-discipline cost analysis plugins:
// material cost, labor cost and quantity takeoff.
package costplugins

import (
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const materialCostSystemPrompt = `You are an expert construction cost estimator.
Extract all information related to construction materials and their costs from the provided text.

Focus on:
1. Material types and specifications
2. Quantities and units
3. Unit costs (if provided)
4. Material grades and quality levels
5. Special material requirements
6. Market price considerations

For materials without explicit costs in the text, provide reasonable market rate estimates in USD.

Return the information as a structured JSON object with these properties:
- materials: An array of material objects, each containing:
  - name: Material name/type
  - description: Detailed description
  - quantity: Estimated quantity
  - unit: Unit of measurement
  - unit_cost: Cost per unit in USD
  - total_cost: Total cost for this material in USD
- summary: Object containing:
  - total_material_cost: Sum of all material costs
  - confidence_level: High/Medium/Low based on information quality
  - notes: Any important notes about the estimates

Only include information that is explicitly mentioned or can be reasonably inferred from the text.`

const laborCostSystemPrompt = `You are an expert construction cost estimator.
Extract all information related to labor requirements and associated costs from the provided text.

Focus on:
1. Labor categories (carpenters, electricians, plumbers, etc.)
2. Labor hours or person-days required
3. Labor rates (if provided)
4. Specialized labor requirements
5. Scheduling and sequencing considerations
6. Productivity factors or assumptions

For labor rates not explicitly stated in the text, provide reasonable market rate estimates in USD per hour.

Return the information as a structured JSON object with these properties:
- labor_categories: An array of labor category objects, each containing:
  - category: Labor category/type
  - description: Detailed description of work
  - hours_required: Estimated labor hours
  - hourly_rate: Cost per hour in USD
  - total_cost: Total cost for this labor category in USD
- summary: Object containing:
  - total_labor_cost: Sum of all labor costs
  - total_labor_hours: Sum of all labor hours
  - average_hourly_rate: Average hourly rate across all categories
  - confidence_level: High/Medium/Low based on information quality
  - notes: Any important notes about the estimates`

const takeoffSystemPrompt = `You are an expert construction estimator generating quantity takeoffs.
Analyze the provided text and generate a detailed quantity takeoff.

Focus on:
1. Identifying all materials, components, and systems
2. Determining quantities with appropriate units
3. Organizing by CSI MasterFormat divisions
4. Including both rough and finished materials
5. Accounting for waste factors
6. Identifying areas needing further clarification

Return the information as a structured JSON object with these properties:
- divisions: An array of division objects, each containing:
  - number: CSI MasterFormat division number
  - name: Division name
  - items: Array of item objects, each containing:
    - description: Detailed description
    - quantity: Numeric quantity
    - unit: Unit of measurement
    - notes: Any relevant notes about the item
- summary: Object containing:
  - total_items: Total number of line items
  - confidence_level: High/Medium/Low based on information quality
  - incomplete_areas: Array of areas needing more information
  - notes: Any important notes about the takeoff

Only include information that is explicitly mentioned or can be reasonably inferred from the text.`

// NewMaterialCost creates the prompt-only material cost plugin.
func NewMaterialCost(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "cost.material_cost",
		Name:               "Material Cost Estimator",
		Description:        "Analyzes specifications and estimates material costs for construction projects.",
		Category:           model.CategoryCost,
		Version:            "1.0.0",
		Price:              399.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".xlsx"},
	}, materialCostSystemPrompt, ai, opts)
}

// NewLaborCost creates the prompt-only labor cost plugin.
func NewLaborCost(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "cost.labor_cost",
		Name:               "Labor Cost Estimator",
		Description:        "Analyzes specifications and estimates labor costs for construction projects.",
		Category:           model.CategoryCost,
		Version:            "1.0.0",
		Price:              399.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".xlsx"},
	}, laborCostSystemPrompt, ai, opts)
}

// NewQuantityTakeoff creates the prompt-only quantity takeoff plugin.
func NewQuantityTakeoff(ai anthropic.Client, opts plugin.LLMOptions) *plugin.Extractor {
	return plugin.NewExtractor(model.PluginMetadata{
		ID:                 "cost.takeoff",
		Name:               "Quantity Takeoff Generator",
		Description:        "Analyzes construction documents to extract quantities of materials and components for cost estimation.",
		Category:           model.CategoryCost,
		Version:            "1.0.0",
		Price:              499.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".xlsx"},
	}, takeoffSystemPrompt, ai, opts)
}
