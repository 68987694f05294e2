package farm

// ToolKind is the category of a tool.
type ToolKind int

const (
	ToolHoe  ToolKind = iota // tills grass into dirt
	ToolSeed                 // plants the crop bound to the tool
)

// String returns a lowercase name for the tool kind.
func (k ToolKind) String() string {
	switch k {
	case ToolHoe:
		return "hoe"
	case ToolSeed:
		return "seed"
	default:
		return "unknown"
	}
}

// Tool is an item the player can select to change what interacting does.
type Tool struct {
	Name string
	Kind ToolKind
	Crop CropSpec // planted crop, only meaningful for ToolSeed
}

// NewHoe creates a hoe tool.
func NewHoe(name string) Tool {
	if name == "" {
		name = "Hoe"
	}
	return Tool{Name: name, Kind: ToolHoe}
}

// NewSeedTool creates a seed tool that plants the given crop variant.
// Seeds are never consumed.
func NewSeedTool(name string, spec CropSpec) Tool {
	if name == "" {
		name = spec.Kind.String() + " Seeds"
	}
	return Tool{Name: name, Kind: ToolSeed, Crop: spec}
}

// IsHoe reports whether t is a hoe.
func (t Tool) IsHoe() bool { return t.Kind == ToolHoe }

// IsSeed reports whether t is a seed tool.
func (t Tool) IsSeed() bool { return t.Kind == ToolSeed }
