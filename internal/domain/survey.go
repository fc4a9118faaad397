package domain

import (
	"sort"
	"strings"
)

// Rasgos reconocidos por la encuesta.
const (
	TraitActive   = "active"
	TraitStudious = "studious"
	TraitSmart    = "smart"
	TraitCreative = "creative"
	TraitArtistic = "artistic"
)

// SurveyRecord es la vista normalizada de la encuesta no academica.
type SurveyRecord struct {
	Interests map[string]bool `json:"interests" yaml:"interests"`
	Traits    map[string]bool `json:"traits" yaml:"traits"`
}

// HasInterest compara sin distinguir mayusculas; un mapa nil no tiene intereses.
func (s SurveyRecord) HasInterest(tag string) bool {
	return s.Interests[normalizeKey(tag)]
}

// HasTrait trata un rasgo ausente como false.
func (s SurveyRecord) HasTrait(name string) bool {
	return s.Traits[normalizeKey(name)]
}

// InterestList devuelve los intereses ordenados, para respuestas deterministas.
func (s SurveyRecord) InterestList() []string {
	out := make([]string, 0, len(s.Interests))
	for k, v := range s.Interests {
		if v {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// SurveyAnswers son las respuestas crudas del formulario. Los valores pueden llegar
// como bool o como texto ("Yes", "true").
type SurveyAnswers struct {
	InterestedScience         any    `json:"interested_science" yaml:"interested_science"`
	InterestedMath            any    `json:"interested_math" yaml:"interested_math"`
	InterestedEnglish         any    `json:"interested_english" yaml:"interested_english"`
	InterestedTechnology      any    `json:"interested_technology" yaml:"interested_technology"`
	InterestedArts            any    `json:"interested_arts" yaml:"interested_arts"`
	InterestedForeignLanguage any    `json:"interested_foreign_language" yaml:"interested_foreign_language"`
	InterestedTourism         any    `json:"interested_tourism" yaml:"interested_tourism"`
	InterestedCrafts          any    `json:"interested_crafts" yaml:"interested_crafts"`
	InterestedProgram         string `json:"interested_program" yaml:"interested_program"`

	IsActive        any `json:"is_active" yaml:"is_active"`
	IsStudious      any `json:"is_studious" yaml:"is_studious"`
	IsSmart         any `json:"is_smart" yaml:"is_smart"`
	IsCreative      any `json:"is_creative" yaml:"is_creative"`
	IsArtistic      any `json:"is_artistic" yaml:"is_artistic"`
	PotentialGenius any `json:"potential_genius" yaml:"potential_genius"`
}

// truthy acepta true, "yes" y "true" en cualquier capitalizacion. Todo lo demas es false.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case *bool:
		return t != nil && *t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "true":
			return true
		}
	}
	return false
}

// ToRecord mapea las respuestas a intereses y rasgos.
// potential_genius cuenta como "active".
func (a SurveyAnswers) ToRecord() SurveyRecord {
	interests := map[string]bool{}
	flags := []struct {
		value any
		tag   string
	}{
		{a.InterestedScience, "science"},
		{a.InterestedMath, "math"},
		{a.InterestedEnglish, "english"},
		{a.InterestedTechnology, "technology"},
		{a.InterestedArts, "arts"},
		{a.InterestedForeignLanguage, "foreign language"},
		{a.InterestedTourism, "tourism"},
		{a.InterestedCrafts, "crafts"},
	}
	for _, f := range flags {
		if truthy(f.value) {
			interests[f.tag] = true
		}
	}
	if p := normalizeKey(a.InterestedProgram); p != "" {
		interests[p] = true
	}

	traits := map[string]bool{
		TraitActive:   truthy(a.IsActive) || truthy(a.PotentialGenius),
		TraitStudious: truthy(a.IsStudious),
		TraitSmart:    truthy(a.IsSmart),
		TraitCreative: truthy(a.IsCreative),
		TraitArtistic: truthy(a.IsArtistic),
	}
	return SurveyRecord{Interests: interests, Traits: traits}
}

// NewSurveyRecord construye un registro normalizado a partir de listas simples.
func NewSurveyRecord(interests []string, traits map[string]bool) SurveyRecord {
	rec := SurveyRecord{
		Interests: make(map[string]bool, len(interests)),
		Traits:    make(map[string]bool, len(traits)),
	}
	for _, i := range interests {
		if k := normalizeKey(i); k != "" {
			rec.Interests[k] = true
		}
	}
	for k, v := range traits {
		rec.Traits[normalizeKey(k)] = v
	}
	return rec
}

// StudentFlags provienen del perfil base, no de la encuesta.
type StudentFlags struct {
	HasDisability    bool `json:"has_disability" yaml:"has_disability"`
	IsWorkingStudent bool `json:"is_working_student" yaml:"is_working_student"`
}

// StudentSnapshot agrupa todo lo que el motor necesita para un estudiante.
type StudentSnapshot struct {
	StudentID string         `json:"student_id" yaml:"student_id"`
	Academic  AcademicRecord `json:"academic" yaml:"academic"`
	Survey    SurveyRecord   `json:"survey" yaml:"survey"`
	Flags     StudentFlags   `json:"flags" yaml:"flags"`
}
