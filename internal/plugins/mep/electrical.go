package mep

import (
	"context"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const electricalSystemPrompt = `You are an expert in analyzing construction documents for electrical systems.
Your task is to extract detailed information about electrical systems from the provided text.

Specifically, identify:
1. Electrical service (size, voltage, phases)
2. Distribution equipment (panels, switchgear, transformers, generators)
3. Lighting systems (fixture types, quantities, controls)
4. Power systems (receptacles, GFCI devices, circuits)
5. Low voltage systems (data, security, fire alarm)
6. Emergency power systems (emergency lighting, exit signs)

Format your response as a JSON object with the following structure:
{
    "service": {
        "size": "service size in amps (if specified)",
        "voltage": "service voltage (if specified)",
        "phases": "number of phases (if specified)"
    },
    "equipment": [
        {
            "type": "equipment type (e.g., panel, switchgear, transformer, generator)",
            "description": "equipment description",
            "rating": "electrical rating (if specified)",
            "location": "location description if available",
            "quantity": quantity value or null
        }
    ],
    "fixtures": [
        {
            "type": "fixture or device type (e.g., receptacle, gfci receptacle, switch, light fixture, exit sign)",
            "description": "fixture description",
            "location": "location description if available",
            "quantity": quantity value or null
        }
    ],
    "low_voltage": [
        {"type": "system type", "description": "system description"}
    ],
    "cost_estimates": {
        "equipment_total_count": total equipment count or null,
        "fixtures_total_count": total fixture count or null,
        "estimated_material_cost": estimated material cost value or null,
        "estimated_labor_cost": estimated labor cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about the electrical systems"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

// ElectricalSystems extracts electrical equipment and device line items and
// prices them per unit.
type ElectricalSystems struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewElectricalSystems creates the electrical systems plugin.
func NewElectricalSystems(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *ElectricalSystems {
	return &ElectricalSystems{ai: ai, opts: opts, rates: rates}
}

func (p *ElectricalSystems) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "mep.electrical_systems",
		Name:               "Electrical Systems Estimator",
		Description:        "Analyzes electrical specifications and extracts structured data about electrical systems.",
		Category:           model.CategoryMEP,
		Version:            "1.0.0",
		Price:              199.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *ElectricalSystems) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *ElectricalSystems) Prompts() map[string]string {
	return map[string]string{"system_prompt": electricalSystemPrompt}
}

func (p *ElectricalSystems) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, electricalSystemPrompt, text)
}

// FormatResults backfills equipment and device costs from the electrical
// unit table, labor as a fixed fraction of material.
func (p *ElectricalSystems) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_material_cost") {
		return res
	}

	equipment := res.Items("equipment")
	fixtures := res.Items("fixtures")
	if len(equipment) == 0 && len(fixtures) == 0 {
		return res
	}

	equipCount, equipCost := priceUnits(equipment, p.rates.Electrical)
	fixCount, fixCost := priceUnits(fixtures, p.rates.Electrical)
	materialCost := equipCost + fixCost
	laborCost := materialCost * p.rates.Labor.Electrical

	cb := res.CostBlock()
	cb["equipment_total_count"] = model.NilIfZero(equipCount)
	cb["fixtures_total_count"] = model.NilIfZero(fixCount)
	cb["estimated_material_cost"] = model.NilIfZero(units.Round2(materialCost))
	cb["estimated_labor_cost"] = model.NilIfZero(units.Round2(laborCost))
	cb["currency"] = "USD"

	return res
}
