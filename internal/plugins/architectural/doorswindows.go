package architectural

import (
	"context"
	"strings"

	"github.com/constructai/estimator-cli/internal/costtab"
	"github.com/constructai/estimator-cli/internal/model"
	"github.com/constructai/estimator-cli/internal/plugin"
	"github.com/constructai/estimator-cli/internal/units"
	"github.com/constructai/estimator-cli/pkg/anthropic"
)

const doorsWindowsSystemPrompt = `You are an expert in analyzing construction documents for doors and windows.
Your task is to extract detailed information about doors and windows from the provided text.

Specifically, identify:
1. Door types (e.g., solid core, hollow core, fire-rated, sliding, bi-fold)
2. Door materials (e.g., wood, metal, glass, fiberglass)
3. Door dimensions (width, height, thickness)
4. Window types (e.g., fixed, casement, double-hung, sliding, awning)
5. Window dimensions
6. Window glazing specifications (e.g., insulated, tempered, low-E)
7. Special requirements or details

Format your response as a JSON object with the following structure:
{
    "doors": [
        {
            "type": "door type",
            "material": "primary material",
            "width": "door width",
            "height": "door height",
            "fire_rating": "fire rating (if specified)",
            "location": "location description if available",
            "quantity": quantity value or null,
            "tag": "door tag or identifier (if available)"
        }
    ],
    "windows": [
        {
            "type": "window type",
            "material": "primary material",
            "width": "window width",
            "height": "window height",
            "glazing": "glazing specifications",
            "location": "location description if available",
            "quantity": quantity value or null,
            "tag": "window tag or identifier (if available)"
        }
    ],
    "door_schedule": [
        {"tag": "door tag/identifier", "count": count value or null, "remarks": "any schedule remarks"}
    ],
    "window_schedule": [
        {"tag": "window tag/identifier", "count": count value or null, "remarks": "any schedule remarks"}
    ],
    "cost_estimates": {
        "doors_total_count": total number of doors or null,
        "windows_total_count": total number of windows or null,
        "estimated_doors_cost": estimated doors cost value or null,
        "estimated_windows_cost": estimated windows cost value or null,
        "currency": "USD"
    },
    "notes": ["any general notes about the doors and windows"]
}

Only include information that is explicitly stated in the document.
If information is not available, use null values.`

// Door sizing thresholds and premiums. A standard door leaf is about 36in
// wide; anything over 42in prices as an oversized unit.
const (
	oversizeDoorWidthIn  = 42.0
	oversizeDoorPremium  = 1.25
	standardWindowAreaSF = 15.0
	largeWindowAreaSF    = 20.0
)

// Glazing premiums applied multiplicatively per matched specification.
const (
	lowEPremium     = 1.1
	temperedPremium = 1.15
	insulatedPrem   = 1.2
	tripleGlazePrem = 1.3
)

// DoorsWindows extracts door and window line items and prices them per unit
// with size and glazing premiums.
type DoorsWindows struct {
	ai    anthropic.Client
	opts  plugin.LLMOptions
	rates costtab.Rates
}

// NewDoorsWindows creates the doors/windows plugin.
func NewDoorsWindows(ai anthropic.Client, opts plugin.LLMOptions, rates costtab.Rates) *DoorsWindows {
	return &DoorsWindows{ai: ai, opts: opts, rates: rates}
}

func (p *DoorsWindows) Metadata() model.PluginMetadata {
	return model.PluginMetadata{
		ID:                 "architectural.doors_windows",
		Name:               "Doors and Windows Quantifier",
		Description:        "Analyzes construction documents to extract doors and windows details, including types, sizes, quantities, and specifications.",
		Category:           model.CategoryArchitectural,
		Version:            "1.0.0",
		Price:              149.0,
		SupportedFileTypes: []string{".pdf", ".txt", ".dwg"},
	}
}

func (p *DoorsWindows) ValidateInput(text string) bool {
	return plugin.ValidTextInput(text)
}

func (p *DoorsWindows) Prompts() map[string]string {
	return map[string]string{"system_prompt": doorsWindowsSystemPrompt}
}

func (p *DoorsWindows) Analyze(ctx context.Context, text string, _ map[string]any) (model.Result, error) {
	if !p.ValidateInput(text) {
		return model.Failure("Invalid input text for analysis"), nil
	}
	return plugin.AnalyzeText(ctx, p.ai, p.opts, doorsWindowsSystemPrompt, text)
}

// FormatResults backfills door and window costs from the type tables plus
// size and glazing premiums. Schedule counts fill in totals when the line
// items carry no quantities.
func (p *DoorsWindows) FormatResults(res model.Result) model.Result {
	if res.Failed() || res.HasCost("estimated_doors_cost") {
		return res
	}

	doorCount, doorCost := p.priceDoors(res.Items("doors"))
	windowCount, windowCost := p.priceWindows(res.Items("windows"))

	if doorCount == 0 {
		doorCount = scheduleCount(res.Items("door_schedule"))
	}
	if windowCount == 0 {
		windowCount = scheduleCount(res.Items("window_schedule"))
	}

	cb := res.CostBlock()
	cb["doors_total_count"] = model.NilIfZero(doorCount)
	cb["windows_total_count"] = model.NilIfZero(windowCount)
	cb["estimated_doors_cost"] = model.NilIfZero(units.Round2(doorCost))
	cb["estimated_windows_cost"] = model.NilIfZero(units.Round2(windowCost))
	cb["currency"] = "USD"

	return res
}

// DoorUnitCost resolves the priced unit cost for a single door: base rate by
// type keyword, oversized premium past the width threshold.
func (p *DoorsWindows) DoorUnitCost(doorType, width string) float64 {
	unitCost := p.rates.Doors.Resolve(doorType)
	if units.First(width) > oversizeDoorWidthIn {
		unitCost *= oversizeDoorPremium
	}
	return unitCost
}

func (p *DoorsWindows) priceDoors(doors []map[string]any) (count, total float64) {
	for _, door := range doors {
		quantity, ok := model.Num(door, "quantity")
		if !ok || quantity <= 0 {
			quantity = 1
		}
		count += quantity
		total += quantity * p.DoorUnitCost(model.Str(door, "type"), model.Str(door, "width"))
	}
	return count, total
}

// WindowUnitCost resolves the priced unit cost for a single window: base
// rate by type, proportional premium for glass area beyond the standard
// unit, multiplicative glazing premiums.
func (p *DoorsWindows) WindowUnitCost(windowType, width, height, glazing string) float64 {
	unitCost := p.rates.Windows.Resolve(windowType)

	area := units.First(width) * units.First(height)
	if area > largeWindowAreaSF {
		unitCost *= area / standardWindowAreaSF
	}

	g := normalizeGlazing(glazing)
	if g.lowE {
		unitCost *= lowEPremium
	}
	if g.tempered {
		unitCost *= temperedPremium
	}
	if g.insulated {
		unitCost *= insulatedPrem
	}
	if g.triple {
		unitCost *= tripleGlazePrem
	}
	return unitCost
}

func (p *DoorsWindows) priceWindows(windows []map[string]any) (count, total float64) {
	for _, window := range windows {
		quantity, ok := model.Num(window, "quantity")
		if !ok || quantity <= 0 {
			quantity = 1
		}
		count += quantity
		total += quantity * p.WindowUnitCost(
			model.Str(window, "type"),
			model.Str(window, "width"),
			model.Str(window, "height"),
			model.Str(window, "glazing"),
		)
	}
	return count, total
}

func scheduleCount(schedule []map[string]any) float64 {
	var total float64
	for _, row := range schedule {
		if n, ok := model.Num(row, "count"); ok {
			total += n
		}
	}
	return total
}

type glazingSpec struct {
	lowE, tempered, insulated, triple bool
}

func normalizeGlazing(glazing string) glazingSpec {
	g := strings.ToLower(glazing)
	return glazingSpec{
		lowE:      strings.Contains(g, "low-e") || strings.Contains(g, "low e"),
		tempered:  strings.Contains(g, "tempered"),
		insulated: strings.Contains(g, "insulated") || strings.Contains(g, "double"),
		triple:    strings.Contains(g, "triple"),
	}
}
