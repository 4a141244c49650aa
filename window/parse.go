package window

import (
	"fmt"
	"sort"
	"strings"
)

// byName maps accepted names to types. Aliases follow the names other
// spectral tools use, so profiles written for them port over unchanged.
var byName = map[string]Type{
	"rectangular":    TypeRectangular,
	"boxcar":         TypeRectangular,
	"hann":           TypeHann,
	"hanning":        TypeHann,
	"hamming":        TypeHamming,
	"blackman":       TypeBlackman,
	"blackmanharris": TypeBlackmanHarris,
	"flattop":        TypeFlatTop,
	"kaiser":         TypeKaiser,
	"tukey":          TypeTukey,
	"triangle":       TypeTriangle,
	"bartlett":       TypeTriangle,
	"welch":          TypeWelch,
}

// Parse resolves a window name to its Type. Matching is
// case-insensitive and ignores surrounding whitespace.
func Parse(name string) (Type, error) {
	t, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return TypeRectangular, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// String returns the canonical name of the window type.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeBlackmanHarris:
		return "blackmanharris"
	case TypeFlatTop:
		return "flattop"
	case TypeKaiser:
		return "kaiser"
	case TypeTukey:
		return "tukey"
	case TypeTriangle:
		return "triangle"
	case TypeWelch:
		return "welch"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Names returns the canonical window names in sorted order.
func Names() []string {
	seen := make(map[string]bool)
	for _, t := range byName {
		seen[t.String()] = true
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
