package showcase

// Strategy is the image-selection algorithm a slot renders with
type Strategy string

const (
	StrategySingle Strategy = "single"
	StrategyDouble Strategy = "double"
	StrategyTriple Strategy = "triple"
)

// Valid reports whether s is one of the closed set of strategies
func (s Strategy) Valid() bool {
	switch s {
	case StrategySingle, StrategyDouble, StrategyTriple:
		return true
	}
	return false
}

// Panels is the number of image panels the strategy renders side by side
func (s Strategy) Panels() int {
	switch s {
	case StrategyDouble:
		return 2
	case StrategyTriple:
		return 3
	}
	return 1
}

// Variant is a device-size layout
type Variant string

const (
	VariantCompact Variant = "compact"
	VariantWide    Variant = "wide"
)

// Variants lists every variant in render order
var Variants = []Variant{VariantCompact, VariantWide}

func (v Variant) Valid() bool {
	return v == VariantCompact || v == VariantWide
}

// Columns is the grid width of the variant
func (v Variant) Columns() int {
	if v == VariantWide {
		return 3
	}
	return 2
}
