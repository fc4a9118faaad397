package domain

// Etiquetas de criterios cumplidos.
const (
	CriteriaAcademic    = "Academic Requirements"
	CriteriaNonAcademic = "Non-Academic/Survey Requirements"
)

// Niveles de recomendacion derivados de percentage_match.
const (
	LevelStrong = "Strong (Meets all criteria)"
	LevelGood   = "Good (Meets 80% of criteria)"
	LevelFair   = "Fair (Meets 50% of criteria)"
	LevelWeak   = "Weak (Meets <50% criteria)"
)

// Tipos de chequeos especiales.
const (
	CheckQualificationRequired = "qualification_list_verification"
	CheckQualificationFailed   = "qualification_list_mismatch"
	CheckQualificationVerified = "qualification_list_verified"
)

// Estados del resumen.
const (
	SummaryStatusSuccess           = "success"
	SummaryStatusNoRecommendations = "no_recommendations"
)

// SpecialCheck es una nota informativa o bloqueante sobre un candidato.
type SpecialCheck struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Blocking    bool   `json:"blocking"`
}

// RecommendationResult es la salida del motor por programa.
type RecommendationResult struct {
	ProgramCode         string         `json:"program_code"`
	ProgramName         string         `json:"program_name"`
	AcademicScore       float64        `json:"academic_score"`
	NonAcademicScore    float64        `json:"non_academic_score"`
	OverallScore        float64        `json:"overall_score"`
	PercentageMatch     int            `json:"percentage_match"`
	TotalCriteria       int            `json:"total_criteria"`
	Rank                int            `json:"rank"`
	RecommendationLevel string         `json:"recommendation_level"`
	CriteriaMet         []string       `json:"criteria_met"`
	SpecialChecks       []SpecialCheck `json:"special_checks"`
}

// Blocked indica si algun chequeo especial impide confirmar el programa.
func (r RecommendationResult) Blocked() bool {
	for _, c := range r.SpecialChecks {
		if c.Blocking {
			return true
		}
	}
	return false
}

// RecommendationSummary es lo que ve el llamador.
type RecommendationSummary struct {
	Status               string                 `json:"status"`
	Message              string                 `json:"message"`
	Recommendations      []RecommendationResult `json:"recommendations"`
	TotalRecommendations int                    `json:"total_recommendations"`
	AllRecommendations   []RecommendationResult `json:"all_recommendations"`
}
