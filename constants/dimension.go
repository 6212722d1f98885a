package constants

// DimensionType is the closed set of dimension kinds we emit.
// Candidates that cannot be classified into one of these are dropped,
// never defaulted.
type DimensionType string

const (
	Diameter DimensionType = "diameter"
	Radius   DimensionType = "radius"
	Length   DimensionType = "length"
	Width    DimensionType = "width"
	Height   DimensionType = "height"
)

var allDimensionTypes = []DimensionType{
	Diameter,
	Radius,
	Length,
	Width,
	Height,
}

func DimensionTypesAsStrings() []string {
	result := make([]string, len(allDimensionTypes))
	for i, t := range allDimensionTypes {
		result[i] = string(t)
	}
	return result
}

// Canonical units after post-processing. Unknown units pass through
// unchanged, so this set is descriptive, not enforced.
const (
	UnitMM   = "mm"
	UnitCM   = "cm"
	UnitInch = "inch"
)
