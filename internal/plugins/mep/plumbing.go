package mep

import (
	"context"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const plumbingSystemPrompt = `You are an expert in analyzing construction documents for plumbing systems.
Your task is to extract detailed information about plumbing systems from the provided text.

Specifically, identify:
1. Water supply systems (domestic cold, domestic hot, recirculation)
2. Sanitary systems (drainage, venting)
3. Plumbing fixtures (toilets, urinals, lavatories, sinks, showers, drinking fountains)
4. Water heating systems (water heaters, boilers)
5. Special plumbing systems (gas, compressed air)

Format your response as a JSON object with the following structure:
{
    "systems": [
        {
            "type": "system type (e.g., domestic cold water, sanitary drainage)",
            "description": "system description",
            "pipe_material": "pipe material (if specified)",
            "pipe_size": "pipe size (if specified)"
        }
    ],
    "fixtures": [
        {
            "type": "fixture type (e.g., toilet, urinal, lavatory, sink, shower)",
            "description": "fixture description",
            "location": "location description if available",
            "quantity": quantity value or null
        }
    ],
    "equipment": [
        {
            "type": "equipment type (e.g., water heater, boiler)",
            "description": "equipment description",
            "capacity": "capacity (if specified)",
            "quantity": quantity value or null
        }
    ],
    "cost_estimates": {
        "fixtures_total_count": total fixture count or null,
        "equipment_total_count": total equipment count or null,
        "estimated_material_cost": estimated material cost value or null,
        "estimated_labor_cost": estimated labor cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about the plumbing systems"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

// PlumbingSystems extracts plumbing fixture and equipment line items and
// prices them per unit.
type PlumbingSystems struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewPlumbingSystems creates the plumbing systems plugin.
func NewPlumbingSystems(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *PlumbingSystems {
	return &PlumbingSystems{ai: ai, opts: opts, rates: rates}
}

func (p *PlumbingSystems) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "mep.plumbing_systems",
		Name:               "Plumbing Systems Estimator",
		Description:        "Analyzes plumbing specifications and extracts structured data about plumbing systems.",
		Category:           model.CategoryMEP,
		Version:            "1.0.0",
		Price:              199.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *PlumbingSystems) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *PlumbingSystems) Prompts() map[string]string {
	return map[string]string{"system_prompt": plumbingSystemPrompt}
}

func (p *PlumbingSystems) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, plumbingSystemPrompt, text)
}

// FormatResults backfills fixture and equipment costs from the plumbing unit
// table. Plumbing labor runs above material, so the ratio exceeds 1.
func (p *PlumbingSystems) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_material_cost") {
		return res
	}

	fixtures := res.Items("fixtures")
	equipment := res.Items("equipment")
	if len(fixtures) == 0 && len(equipment) == 0 {
		return res
	}

	fixCount, fixCost := priceUnits(fixtures, p.rates.Plumbing)
	equipCount, equipCost := priceUnits(equipment, p.rates.Plumbing)
	materialCost := fixCost + equipCost
	laborCost := materialCost * p.rates.Labor.Plumbing

	cb := res.CostBlock()
	cb["fixtures_total_count"] = model.NilIfZero(fixCount)
	cb["equipment_total_count"] = model.NilIfZero(equipCount)
	cb["estimated_material_cost"] = model.NilIfZero(units.Round2(materialCost))
	cb["estimated_labor_cost"] = model.NilIfZero(units.Round2(laborCost))
	cb["currency"] = "USD"

	return res
}
