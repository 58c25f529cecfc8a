package schema

// VisibilityLevel is the normalized occlusion level of an annotation.
type VisibilityLevel string

const (
	VisibilityFull        VisibilityLevel = "full"
	VisibilityMost        VisibilityLevel = "most"
	VisibilityPartial     VisibilityLevel = "partial"
	VisibilityNone        VisibilityLevel = "none"
	VisibilityUnavailable VisibilityLevel = "unavailable"
)

// older datasets store percentage ranges
var visibilityAliases = map[string]VisibilityLevel{
	"v0-40":   VisibilityNone,
	"v40-60":  VisibilityPartial,
	"v60-80":  VisibilityMost,
	"v80-100": VisibilityFull,
}

// ParseVisibilityLevel maps a stored level, canonical or alias, to a
// VisibilityLevel. Anything else is VisibilityUnavailable.
func ParseVisibilityLevel(s string) VisibilityLevel {
	switch l := VisibilityLevel(s); l {
	case VisibilityFull, VisibilityMost, VisibilityPartial, VisibilityNone, VisibilityUnavailable:
		return l
	}
	if l, ok := visibilityAliases[s]; ok {
		return l
	}
	return VisibilityUnavailable
}

// Visibility is a record of visibility.json. Level keeps the stored string so
// that the row encodes back unchanged; use Normalized for comparisons.
type Visibility struct {
	Token       string `json:"token"`
	Level       string `json:"level"`
	Description string `json:"description"`
}

func (Visibility) Table() Name { return NameVisibility }

func (v Visibility) GetToken() string { return v.Token }

func (v Visibility) Validate() error {
	return nonEmpty("token", v.Token)
}

func (v Visibility) Normalized() VisibilityLevel {
	return ParseVisibilityLevel(v.Level)
}
