package model

// Category is the fixed set of plugin categories.
type Category string

const (
	CategoryArchitectural Category = "architectural"
	CategoryStructural    Category = "structural"
	CategoryMEP           Category = "mep"
	CategoryCost          Category = "cost"
	CategoryGeneral       Category = "general"
)

// Categories lists all valid plugin categories in display order.
func Categories() []Category {
	return []Category{
		CategoryArchitectural,
		CategoryStructural,
		CategoryMEP,
		CategoryCost,
		CategoryGeneral,
	}
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryArchitectural, CategoryStructural, CategoryMEP, CategoryCost, CategoryGeneral:
		return true
	}
	return false
}

// PluginMetadata describes a registered analysis plugin. Immutable after
// registration; the ID is unique across the registry (last writer wins on
// re-registration).
type PluginMetadata struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Category           Category `json:"category"`
	Version            string   `json:"version"`
	Price              float64  `json:"price"`
	SupportedFileTypes []string `json:"supported_file_types,omitempty"`
}

// AnalysisRequest carries the raw document text and an opaque context map
// passed through to the plugin (project region, scale factor, etc.).
type AnalysisRequest struct {
	Text    string         `json:"text"`
	Context map[string]any `json:"context,omitempty"`
}
