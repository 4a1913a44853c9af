// Package structural provides the analysis plugins for structural building
// systems: concrete, foundations, framing and load requirements.
package structural

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const concreteSystemPrompt = `You are an expert structural engineer specializing in concrete structures.
Your task is to analyze construction documents and extract detailed information about concrete structural elements.

Specifically, identify:
1. Concrete elements (foundations, footings, slabs, columns, beams, walls)
2. Concrete specifications (strength, class, mix design)
3. Reinforcement details (rebar size, spacing, placement)
4. Dimensions and quantities
5. Special requirements (water/cement ratio, admixtures, curing requirements)

Format your response as a JSON object with the following structure:
{
    "foundations": [
        {
            "type": "foundation type (strip, spread, raft, etc.)",
            "dimensions": "dimensions",
            "concrete_class": "concrete class/strength",
            "reinforcement": "reinforcement details",
            "depth": "depth/thickness",
            "location": "location description",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., CY, CF)"
        }
    ],
    "columns": [
        {
            "type": "column type",
            "dimensions": "dimensions",
            "concrete_class": "concrete class/strength",
            "reinforcement": "reinforcement details",
            "height": "height",
            "location": "location description",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., CY, CF)"
        }
    ],
    "beams": [
        {
            "type": "beam type",
            "dimensions": "dimensions (width x depth)",
            "concrete_class": "concrete class/strength",
            "reinforcement": "reinforcement details",
            "span": "span",
            "location": "location description",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., CY, CF)"
        }
    ],
    "slabs": [
        {
            "type": "slab type (on grade, suspended, etc.)",
            "thickness": "thickness",
            "concrete_class": "concrete class/strength",
            "reinforcement": "reinforcement details",
            "area": "area",
            "location": "location description",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., CY, SF)"
        }
    ],
    "walls": [
        {
            "type": "wall type (shear, retaining, etc.)",
            "thickness": "thickness",
            "height": "height",
            "length": "length",
            "concrete_class": "concrete class/strength",
            "reinforcement": "reinforcement details",
            "location": "location description",
            "quantity": quantity value or null,
            "unit": "measurement unit (e.g., CY, SF)"
        }
    ],
    "concrete_specifications": {
        "classes": [
            {
                "designation": "concrete class designation",
                "strength": "compressive strength",
                "w_c_ratio": "water-cement ratio",
                "cement_type": "cement type",
                "admixtures": "admixtures"
            }
        ],
        "curing": "curing requirements",
        "testing": "testing requirements",
        "general_notes": "general concrete specifications"
    },
    "reinforcement_specifications": {
        "rebar_grades": "rebar grades used",
        "coating": "coating requirements",
        "splice_requirements": "splicing requirements",
        "cover_requirements": "concrete cover requirements",
        "general_notes": "general reinforcement specifications"
    },
    "quantity_summary": {
        "total_concrete_volume": total concrete volume or null,
        "total_concrete_unit": "CY or appropriate unit",
        "total_reinforcement_weight": total reinforcement weight or null,
        "total_reinforcement_unit": "tons or appropriate unit"
    },
    "cost_estimates": {
        "estimated_concrete_cost": estimated concrete cost value or null,
        "estimated_reinforcement_cost": estimated reinforcement cost value or null,
        "estimated_formwork_cost": estimated formwork cost value or null,
        "estimated_labor_cost": estimated labor cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about concrete structures"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

var psiRe = regexp.MustCompile(`(?i)(\d{3,5})\s*psi`)

// Standard strength classes the psi snapping resolves against.
var standardPSI = []int{3000, 4000, 5000, 6000}

// Concrete extracts concrete structural elements and prices concrete volume,
// reinforcement and formwork, plus placement labor.
type Concrete struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewConcrete creates the concrete structures plugin.
func NewConcrete(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *Concrete {
	return &Concrete{ai: ai, opts: opts, rates: rates}
}

func (p *Concrete) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "structural.concrete",
		Name:               "Concrete Structures Estimator",
		Description:        "Analyzes construction documents to extract concrete structural elements, reinforcement details, specifications, and quantities.",
		Category:           model.CategoryStructural,
		Version:            "1.0.0",
		Price:              199.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *Concrete) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *Concrete) Prompts() map[string]string {
	return map[string]string{"system_prompt": concreteSystemPrompt}
}

func (p *Concrete) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, concreteSystemPrompt, text)
}

// FormatResults backfills the four concrete cost components. Concrete volume
// prices by strength class, reinforcement by weight (falling back to the
// lbs-per-CY heuristic), formwork by per-element contact area (falling back
// to the SF-per-CY heuristic), labor as a fixed fraction of the three.
func (p *Concrete) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_concrete_cost") {
		return res
	}

	volume := p.totalVolume(res)
	concreteCost := volume * p.concreteRate(res)
	reinforcementCost := p.reinforcementCost(res, volume)
	formworkCost := p.formworkCost(res, volume)
	laborCost := (concreteCost + reinforcementCost + formworkCost) * p.rates.Labor.Concrete

	cb := res.CostBlock()
	cb["estimated_concrete_cost"] = model.NilIfZero(units.Round2(concreteCost))
	cb["estimated_reinforcement_cost"] = model.NilIfZero(units.Round2(reinforcementCost))
	cb["estimated_formwork_cost"] = model.NilIfZero(units.Round2(formworkCost))
	cb["estimated_labor_cost"] = model.NilIfZero(units.Round2(laborCost))
	cb["currency"] = "USD"

	return res
}

var elementKeys = []string{"foundations", "columns", "beams", "slabs", "walls"}

// totalVolume sums per-element volumes in cubic yards. Only CY and CF line
// items count; the quantity summary fills in when no element carries a
// volume of its own.
func (p *Concrete) totalVolume(res model.Result) float64 {
	var total float64
	for _, key := range elementKeys {
		for _, element := range res.Items(key) {
			quantity, ok := model.Num(element, "quantity")
			if !ok || quantity <= 0 {
				continue
			}
			switch strings.ToUpper(model.Str(element, "unit")) {
			case "CY":
				total += quantity
			case "CF":
				total += units.CubicFeetToYards(quantity)
			}
		}
	}
	if total > 0 {
		return total
	}

	summary, ok := res.Data["quantity_summary"].(map[string]any)
	if !ok {
		return 0
	}
	volume, ok := model.Num(summary, "total_concrete_volume")
	if !ok || volume <= 0 {
		return 0
	}
	if strings.ToUpper(model.Str(summary, "total_concrete_unit")) == "CF" {
		volume = units.CubicFeetToYards(volume)
	}
	return volume
}

// concreteRate resolves the $/CY rate from the specified strength classes,
// snapping psi values to the nearest standard class within 500 psi. Without
// a recognizable strength the general rate applies.
func (p *Concrete) concreteRate(res model.Result) float64 {
	class := "general"

	specs, ok := res.Data["concrete_specifications"].(map[string]any)
	if ok {
		if classes, ok := specs["classes"].([]any); ok {
			for _, c := range classes {
				m, ok := c.(map[string]any)
				if !ok {
					continue
				}
				if snapped := snapPSI(model.Str(m, "strength")); snapped != "" {
					class = snapped
				}
			}
		}
	}

	return p.rates.Concrete.Resolve(class)
}

// snapPSI extracts a psi figure and snaps it to the nearest standard class
// within 500 psi. Returns "" when no psi token matches or nothing is close
// enough.
func snapPSI(strength string) string {
	m := psiRe.FindStringSubmatch(strength)
	if m == nil {
		return ""
	}
	psi, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	for _, std := range standardPSI {
		diff := psi - std
		if diff < 0 {
			diff = -diff
		}
		if diff < 500 {
			return strconv.Itoa(std)
		}
	}
	return ""
}

// reinforcementCost prices the stated reinforcement weight, converting lbs
// to tons, or falls back to the configured lbs-per-CY assumption.
func (p *Concrete) reinforcementCost(res model.Result, volume float64) float64 {
	summary, _ := res.Data["quantity_summary"].(map[string]any)

	weight, ok := model.Num(summary, "total_reinforcement_weight")
	if ok && weight > 0 {
		if strings.EqualFold(model.Str(summary, "total_reinforcement_unit"), "lbs") {
			weight = units.PoundsToTons(weight)
		}
		return weight * p.rates.ReinforcementPerTon
	}

	return units.PoundsToTons(volume*p.rates.Defaults.ReinforcementLbsPerCY) * p.rates.ReinforcementPerTon
}

// formworkCost sums per-element contact areas priced at the element-type
// rate. Elements without usable geometry contribute nothing; when no element
// yields an area the SF-per-CY assumption prices against total volume.
func (p *Concrete) formworkCost(res model.Result, volume float64) float64 {
	var total float64
	for _, key := range elementKeys {
		for _, element := range res.Items(key) {
			area, formType := formworkArea(key, element)
			if area <= 0 {
				continue
			}
			total += area * p.rates.Formwork.Resolve(formType)
		}
	}
	if total > 0 {
		return total
	}
	return volume * p.rates.Defaults.FormworkSFPerCY * p.rates.Formwork.Fallback()
}

// formworkArea estimates contact area from element geometry. Foundations and
// columns assume a square footprint (size x 4 sides); walls form both faces;
// beams form the bottom plus both sides along the span; only elevated slabs
// need soffit forms.
func formworkArea(elementType string, element map[string]any) (area float64, formType string) {
	switch elementType {
	case "foundations":
		size := units.First(model.Str(element, "dimensions"))
		depth := units.First(model.Str(element, "depth"))
		return size * 4 * depth, "foundation"
	case "walls":
		length := units.First(model.Str(element, "length"))
		height := units.First(model.Str(element, "height"))
		return length * height * 2, "walls"
	case "columns":
		size := units.First(model.Str(element, "dimensions"))
		height := units.First(model.Str(element, "height"))
		return size * 4 * height, "columns"
	case "beams":
		width, depth := units.Dimensions(model.Str(element, "dimensions"))
		span := units.First(model.Str(element, "span"))
		return (width + 2*depth) * span, "beams"
	case "slabs":
		if strings.Contains(strings.ToLower(model.Str(element, "type")), "on grade") {
			return 0, ""
		}
		return units.First(model.Str(element, "area")), "elevated_slab"
	}
	return 0, ""
}
