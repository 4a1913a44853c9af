package mep

import (
	"context"
	"strings"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const hvacSystemPrompt = `You are an expert in analyzing construction documents for HVAC and mechanical systems.
Your task is to extract detailed information about HVAC and mechanical systems from the provided text.

Specifically, identify:
1. Heating systems (boilers, furnaces, heat pumps)
2. Cooling systems (chillers, condensers, cooling towers)
3. Air handling units and fans
4. Ventilation systems (energy recovery, makeup air, exhaust)
5. Terminal units (VAV boxes, diffusers)
6. Ductwork and piping
7. Controls and building automation systems

Format your response as a JSON object with the following structure:
{
    "equipment": [
        {
            "type": "equipment type (e.g., boiler, chiller, rooftop unit, air handler, exhaust fan, vav box)",
            "description": "equipment description",
            "capacity": "capacity with units (e.g., 2,000 MBH, 15,000 CFM, 200 tons)",
            "location": "location description if available",
            "quantity": quantity value or null
        }
    ],
    "ductwork": [
        {"type": "duct type", "material": "duct material", "description": "ductwork description"}
    ],
    "controls": [
        {"type": "control system type", "description": "control system description"}
    ],
    "cost_estimates": {
        "equipment_total_count": total equipment count or null,
        "estimated_material_cost": estimated material cost value or null,
        "estimated_labor_cost": estimated labor cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about the HVAC and mechanical systems"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

// Capacity baselines for proportional equipment sizing. A unit rated at the
// baseline prices at the table rate; larger units scale linearly.
const (
	baselineMBH = 500.0
	baselineCFM = 2000.0
)

// HVACSystems extracts mechanical equipment line items and prices them per
// unit, scaled by rated capacity.
type HVACSystems struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewHVACSystems creates the HVAC systems plugin.
func NewHVACSystems(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *HVACSystems {
	return &HVACSystems{ai: ai, opts: opts, rates: rates}
}

func (p *HVACSystems) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "mep.hvac_systems",
		Name:               "HVAC & Mechanical Estimator",
		Description:        "Analyzes HVAC and mechanical specifications and extracts structured data about these systems.",
		Category:           model.CategoryMEP,
		Version:            "1.0.0",
		Price:              249.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *HVACSystems) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *HVACSystems) Prompts() map[string]string {
	return map[string]string{"system_prompt": hvacSystemPrompt}
}

func (p *HVACSystems) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, hvacSystemPrompt, text)
}

// FormatResults backfills equipment costs from the mechanical unit table,
// scaled by rated capacity where the line item carries one.
func (p *HVACSystems) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_material_cost") {
		return res
	}

	equipment := res.Items("equipment")
	if len(equipment) == 0 {
		return res
	}

	var count, materialCost float64
	for _, item := range equipment {
		quantity, ok := model.Num(item, "quantity")
		if !ok || quantity <= 0 {
			quantity = 1
		}
		rate := p.rates.HVAC.Resolve(model.Str(item, "type") + " " + model.Str(item, "description"))
		rate *= capacityFactor(model.Str(item, "capacity"))
		count += quantity
		materialCost += quantity * rate
	}
	laborCost := materialCost * p.rates.Labor.HVAC

	cb := res.CostBlock()
	cb["equipment_total_count"] = model.NilIfZero(count)
	cb["estimated_material_cost"] = model.NilIfZero(units.Round2(materialCost))
	cb["estimated_labor_cost"] = model.NilIfZero(units.Round2(laborCost))
	cb["currency"] = "USD"

	return res
}

// capacityFactor scales a unit cost by rated capacity relative to a baseline.
// Units at or below the baseline price at the table rate; thousands
// separators in capacity strings are handled by the number parser.
func capacityFactor(capacity string) float64 {
	c := strings.ToUpper(capacity)
	value := units.First(capacity)
	if value <= 0 {
		return 1
	}

	var baseline float64
	switch {
	case strings.Contains(c, "MBH"):
		baseline = baselineMBH
	case strings.Contains(c, "CFM"):
		baseline = baselineCFM
	default:
		return 1
	}

	if factor := value / baseline; factor > 1 {
		return factor
	}
	return 1
}
