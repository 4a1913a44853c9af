package costtab

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Rates bundles every unit-cost table and ratio the domain calculators use.
// Built once at startup from DefaultRates, optionally adjusted from a yaml
// rates file, and read-only afterwards.
type Rates struct {
	// $/SF by wall/partition material.
	Walls Table
	// $/unit by door and window type.
	Doors   Table
	Windows Table
	// $/unit by electrical component.
	Electrical Table
	// $/unit by plumbing fixture or equipment.
	Plumbing Table
	// $/unit by HVAC equipment type.
	HVAC Table
	// $/CY by concrete strength class (psi).
	Concrete Table
	// $/SF of formwork by element type.
	Formwork Table

	// $/ton of reinforcing steel.
	ReinforcementPerTon float64

	Labor    LaborRatios
	Defaults HeuristicDefaults
}

// LaborRatios are the fixed labor-to-material multipliers per domain.
type LaborRatios struct {
	Walls      float64 `yaml:"walls"`
	Electrical float64 `yaml:"electrical"`
	Plumbing   float64 `yaml:"plumbing"`
	HVAC       float64 `yaml:"hvac"`
	Concrete   float64 `yaml:"concrete"`
}

// HeuristicDefaults hold the unsourced industry rules of thumb used when a
// document gives no explicit figure. Kept configurable rather than treated
// as engineering facts.
type HeuristicDefaults struct {
	// Reinforcement weight assumed per cubic yard of concrete.
	ReinforcementLbsPerCY float64 `yaml:"reinforcement_lbs_per_cy"`
	// Formwork contact area assumed per cubic yard of concrete.
	FormworkSFPerCY float64 `yaml:"formwork_sf_per_cy"`
}

// DefaultRates returns the built-in rate set.
func DefaultRates() Rates {
	return Rates{
		Walls: New(
			Entry{"concrete", 22.0},
			Entry{"masonry", 18.5},
			Entry{"wood stud", 12.0},
			Entry{"metal stud", 14.5},
			Entry{"drywall", 2.5},
			Entry{"plaster", 5.0},
			Entry{"general", 15.0},
		),
		Doors: New(
			Entry{"hollow core", 150.0},
			Entry{"solid core", 250.0},
			Entry{"fire rated", 350.0},
			Entry{"metal", 400.0},
			Entry{"glass", 500.0},
			Entry{"sliding", 450.0},
			Entry{"bi-fold", 300.0},
			Entry{"pocket", 350.0},
			Entry{"french", 550.0},
			Entry{"general", 300.0},
		),
		Windows: New(
			Entry{"fixed", 300.0},
			Entry{"single hung", 350.0},
			Entry{"double hung", 400.0},
			Entry{"casement", 450.0},
			Entry{"awning", 400.0},
			Entry{"sliding", 450.0},
			Entry{"bay", 1200.0},
			Entry{"bow", 1500.0},
			Entry{"picture", 600.0},
			Entry{"general", 400.0},
		),
		Electrical: New(
			Entry{"switchgear", 8500.0},
			Entry{"panel", 1800.0},
			Entry{"transformer", 4200.0},
			Entry{"generator", 12000.0},
			// GFCI must precede the plain receptacle keyword so wet-location
			// devices pick up the higher base rate.
			Entry{"gfci", 85.0},
			Entry{"receptacle", 45.0},
			Entry{"outlet", 45.0},
			Entry{"switch", 40.0},
			Entry{"fixture", 150.0},
			Entry{"emergency", 220.0},
			Entry{"exit", 120.0},
			Entry{"general", 100.0},
		),
		Plumbing: New(
			Entry{"water heater", 1200.0},
			Entry{"boiler", 4500.0},
			Entry{"drinking fountain", 950.0},
			Entry{"toilet", 350.0},
			Entry{"urinal", 450.0},
			Entry{"lavatory", 300.0},
			Entry{"sink", 325.0},
			Entry{"shower", 650.0},
			Entry{"tub", 800.0},
			Entry{"floor drain", 180.0},
			Entry{"general", 400.0},
		),
		HVAC: New(
			Entry{"chiller", 45000.0},
			Entry{"cooling tower", 30000.0},
			Entry{"boiler", 18000.0},
			Entry{"furnace", 3500.0},
			Entry{"heat pump", 5500.0},
			Entry{"rooftop", 9500.0},
			Entry{"air handler", 7500.0},
			Entry{"energy recovery", 8500.0},
			Entry{"exhaust fan", 850.0},
			Entry{"fan", 1200.0},
			Entry{"vav", 950.0},
			Entry{"diffuser", 120.0},
			Entry{"general", 2500.0},
		),
		Concrete: New(
			Entry{"3000", 150.0},
			Entry{"4000", 175.0},
			Entry{"5000", 200.0},
			Entry{"6000", 225.0},
			Entry{"general", 175.0},
		),
		Formwork: New(
			Entry{"foundation", 15.0},
			Entry{"walls", 20.0},
			Entry{"columns", 25.0},
			Entry{"elevated_slab", 18.0},
			Entry{"beams", 22.0},
			Entry{"general", 20.0},
		),
		ReinforcementPerTon: 1200.0,
		Labor: LaborRatios{
			Walls:      0.65,
			Electrical: 0.70,
			Plumbing:   1.10,
			HVAC:       0.90,
			Concrete:   0.40,
		},
		Defaults: HeuristicDefaults{
			ReinforcementLbsPerCY: 125.0,
			FormworkSFPerCY:       50.0,
		},
	}
}

// ratesFile is the yaml shape of a rates override file. Only the keywords
// present are adjusted; declaration order of the built-in tables is kept.
type ratesFile struct {
	Walls               map[string]float64 `yaml:"walls"`
	Doors               map[string]float64 `yaml:"doors"`
	Windows             map[string]float64 `yaml:"windows"`
	Electrical          map[string]float64 `yaml:"electrical"`
	Plumbing            map[string]float64 `yaml:"plumbing"`
	HVAC                map[string]float64 `yaml:"hvac"`
	Concrete            map[string]float64 `yaml:"concrete"`
	Formwork            map[string]float64 `yaml:"formwork"`
	ReinforcementPerTon *float64           `yaml:"reinforcement_per_ton"`
	Labor               *LaborRatios       `yaml:"labor"`
	Defaults            *HeuristicDefaults `yaml:"defaults"`
}

// LoadRates reads a yaml rates file and applies it on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadRates(path string) (Rates, error) {
	rates := DefaultRates()
	if path == "" {
		return rates, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return rates, eris.Wrap(err, "costtab: read rates file")
	}

	var f ratesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return rates, eris.Wrap(err, "costtab: parse rates file")
	}

	rates.Walls = rates.Walls.Override(f.Walls)
	rates.Doors = rates.Doors.Override(f.Doors)
	rates.Windows = rates.Windows.Override(f.Windows)
	rates.Electrical = rates.Electrical.Override(f.Electrical)
	rates.Plumbing = rates.Plumbing.Override(f.Plumbing)
	rates.HVAC = rates.HVAC.Override(f.HVAC)
	rates.Concrete = rates.Concrete.Override(f.Concrete)
	rates.Formwork = rates.Formwork.Override(f.Formwork)

	if f.ReinforcementPerTon != nil {
		rates.ReinforcementPerTon = *f.ReinforcementPerTon
	}
	if f.Labor != nil {
		rates.Labor = *f.Labor
	}
	if f.Defaults != nil {
		rates.Defaults = *f.Defaults
	}

	return rates, nil
}
