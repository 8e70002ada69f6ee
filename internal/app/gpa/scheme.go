package gpa

import "github.com/deniz/courseloop/internal/app/models"

// Scheme is a named mapping from letter grades to point values with a
// declared maximum scale value. Administrative grades (P, I, W, In Progress)
// never appear in any Points map.
type Scheme struct {
	Key         string
	DisplayName string
	ScaleMax    float64
	Points      map[models.Grade]float64
}

// DefaultSchemeKey is used when an unknown scheme name is requested. Unknown
// names fall back rather than fail; callers that want strict behavior check
// KnownScheme first.
const DefaultSchemeKey = "centennial"

var schemes = map[string]Scheme{
	"centennial": {
		Key:         "centennial",
		DisplayName: "Centennial College",
		ScaleMax:    4.5,
		Points: map[models.Grade]float64{
			models.GradeAPlus:  4.5,
			models.GradeA:      4.0,
			models.GradeAMinus: 3.7,
			models.GradeBPlus:  3.3,
			models.GradeB:      3.0,
			models.GradeBMinus: 2.7,
			models.GradeCPlus:  2.3,
			models.GradeC:      2.0,
			models.GradeCMinus: 1.7,
			models.GradeDPlus:  1.3,
			models.GradeD:      1.0,
			models.GradeF:      0.0,
		},
	},
	"us": {
		Key:         "us",
		DisplayName: "US Standard",
		ScaleMax:    4.0,
		Points:      fourPointScale,
	},
	"ects": {
		Key:         "ects",
		DisplayName: "ECTS European",
		ScaleMax:    4.0,
		Points:      fourPointScale,
	},
}

// The 4.0 table is shared by the US and ECTS schemes; A+ caps at the scale
// maximum instead of exceeding it.
var fourPointScale = map[models.Grade]float64{
	models.GradeAPlus:  4.0,
	models.GradeA:      4.0,
	models.GradeAMinus: 3.7,
	models.GradeBPlus:  3.3,
	models.GradeB:      3.0,
	models.GradeBMinus: 2.7,
	models.GradeCPlus:  2.3,
	models.GradeC:      2.0,
	models.GradeCMinus: 1.7,
	models.GradeDPlus:  1.3,
	models.GradeD:      1.0,
	models.GradeF:      0.0,
}

// SchemeFor returns the scheme registered under name, falling back to the
// default scheme for unknown names.
func SchemeFor(name string) Scheme {
	if s, ok := schemes[name]; ok {
		return s
	}
	return schemes[DefaultSchemeKey]
}

// KnownScheme reports whether name is a registered scheme key.
func KnownScheme(name string) bool {
	_, ok := schemes[name]
	return ok
}

// SchemeInfo is a summary of one registered scheme.
type SchemeInfo struct {
	Key         string  `json:"key"`
	DisplayName string  `json:"name"`
	ScaleMax    float64 `json:"scale"`
}

// AvailableSchemes lists every registered scheme, default first, the rest in
// lexical key order.
func AvailableSchemes() []SchemeInfo {
	infos := make([]SchemeInfo, 0, len(schemes))
	infos = append(infos, SchemeInfo{
		Key:         DefaultSchemeKey,
		DisplayName: schemes[DefaultSchemeKey].DisplayName,
		ScaleMax:    schemes[DefaultSchemeKey].ScaleMax,
	})
	for _, key := range []string{"ects", "us"} {
		s := schemes[key]
		infos = append(infos, SchemeInfo{Key: s.Key, DisplayName: s.DisplayName, ScaleMax: s.ScaleMax})
	}
	return infos
}
