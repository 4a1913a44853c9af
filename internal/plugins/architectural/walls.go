// Package architectural provides the analysis plugins for architectural
// building elements: walls/partitions and doors/windows.
package architectural

import (
	"context"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const wallsSystemPrompt = `You are an expert in analyzing construction documents for walls and partitions.
Your task is to extract detailed information about walls and partitions from the provided text.

Specifically, identify:
1. Wall types (e.g., exterior walls, interior partitions, fire walls, load-bearing walls)
2. Wall materials (e.g., concrete, masonry, wood stud, metal stud)
3. Wall dimensions (thickness, height, length if available)
4. Finishes (e.g., drywall, plaster, paneling)
5. Insulation requirements
6. Fire ratings
7. Acoustic ratings
8. Special details or requirements

Format your response as a JSON object with the following structure:
{
    "walls": [
        {
            "type": "wall type",
            "material": "primary material",
            "thickness": "wall thickness",
            "height": "wall height (if specified)",
            "length": "wall length (if specified)",
            "finish": "wall finish",
            "fire_rating": "fire rating (if specified)",
            "location": "location description if available",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., SF, LF)"
        }
    ],
    "partitions": [
        {
            "type": "partition type",
            "material": "primary material",
            "thickness": "partition thickness",
            "height": "partition height (if specified)",
            "length": "partition length (if specified)",
            "finish": "partition finish",
            "location": "location description if available",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., SF, LF)"
        }
    ],
    "cost_estimates": {
        "walls_total_area": estimated total area value or null,
        "walls_unit": "SF or appropriate unit",
        "partitions_total_area": estimated total area value or null,
        "partitions_unit": "SF or appropriate unit",
        "estimated_material_cost": estimated material cost value or null,
        "estimated_labor_cost": estimated labor cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about the walls and partitions"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

// WallsPartitions extracts wall and partition line items and prices them by
// material at $/SF rates.
type WallsPartitions struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewWallsPartitions creates the walls/partitions plugin.
func NewWallsPartitions(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *WallsPartitions {
	return &WallsPartitions{ai: ai, opts: opts, rates: rates}
}

func (p *WallsPartitions) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "architectural.walls_partitions",
		Name:               "Walls and Partitions Estimator",
		Description:        "Analyzes construction documents to extract walls and partitions details, including types, materials, dimensions, and quantities.",
		Category:           model.CategoryArchitectural,
		Version:            "1.0.0",
		Price:              99.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *WallsPartitions) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *WallsPartitions) Prompts() map[string]string {
	return map[string]string{"system_prompt": wallsSystemPrompt}
}

func (p *WallsPartitions) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, wallsSystemPrompt, text)
}

// FormatResults backfills the cost block: per-item area times a material
// $/SF rate, labor as a fixed fraction of material.
func (p *WallsPartitions) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_material_cost") {
		return res
	}

	walls := res.Items("walls")
	partitions := res.Items("partitions")
	if len(walls) == 0 && len(partitions) == 0 {
		return res
	}

	wallArea, wallCost := p.priceItems(walls)
	partArea, partCost := p.priceItems(partitions)
	materialCost := wallCost + partCost
	laborCost := materialCost * p.rates.Labor.Walls

	cb := res.CostBlock()
	cb["walls_total_area"] = wallArea
	cb["walls_unit"] = "SF"
	cb["partitions_total_area"] = partArea
	cb["partitions_unit"] = "SF"
	cb["estimated_material_cost"] = model.NilIfZero(units.Round2(materialCost))
	cb["estimated_labor_cost"] = model.NilIfZero(units.Round2(laborCost))
	cb["currency"] = "USD"

	return res
}

// priceItems sums area and material cost across wall/partition line items.
// Area comes from the quantity field when numeric, else from parsed
// length x height; unparseable dimensions contribute nothing.
func (p *WallsPartitions) priceItems(items []map[string]any) (totalArea, totalCost float64) {
	for _, item := range items {
		area, ok := model.Num(item, "quantity")
		if !ok || area == 0 {
			length := units.First(model.Str(item, "length"))
			height := units.First(model.Str(item, "height"))
			area = length * height
		}
		if area <= 0 {
			continue
		}

		rate := p.rates.Walls.Resolve(model.Str(item, "material"))
		totalArea += area
		totalCost += area * rate
	}
	return totalArea, totalCost
}
