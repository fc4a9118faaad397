package domain

import "strings"

// Codigos de programa del catalogo por defecto.
const (
	ProgramSTE     = "STE"
	ProgramSPFL    = "SPFL"
	ProgramSPTVE   = "SPTVE"
	ProgramSNEDL   = "SNED-L"
	ProgramOHSP    = "OHSP"
	ProgramRegular = "REGULAR"
)

// Identificadores de reglas academicas.
const (
	AcademicRuleHonorsExamPassed = "avg_90_above_85_subjects_exam_passed"
	AcademicRuleHonorsNoExam     = "avg_90_above_85_subjects_no_exam"
	AcademicRuleAverage89Below   = "avg_89_below"
	AcademicRuleDisability       = "all_students_with_disability"
	AcademicRuleWorkingStudent   = "working_student"
)

// Identificadores de reglas no academicas (encuesta).
const (
	SurveyRuleSTE            = "interested_science_math_english_active_studious_smart"
	SurveyRuleSPFL           = "interested_english_foreign_language_arts_tourism_active_studious"
	SurveyRuleSPTVE          = "interested_english_technology_arts_crafts_creative_studious_smart_artistic"
	SurveyRuleDisability     = "has_disability"
	SurveyRuleWorkingStudent = "working_student"
	SurveyRuleAverageStudent = "average_student_not_studious_not_smart"
)

// ProgramDefinition es una entrada del catalogo de programas.
type ProgramDefinition struct {
	Code                       string `json:"code" yaml:"code"`
	Name                       string `json:"name" yaml:"name"`
	AcademicRule               string `json:"academic_rule" yaml:"academic_rule"`
	NonAcademicRule            string `json:"non_academic_rule" yaml:"non_academic_rule"`
	RequiresQualificationCheck bool   `json:"requires_qualification_check" yaml:"requires_qualification_check"`
	// ConfirmationGate exige recalcular la regla academica al confirmar la eleccion.
	ConfirmationGate bool `json:"confirmation_gate" yaml:"confirmation_gate"`
	TotalCriteria    int  `json:"total_criteria" yaml:"total_criteria"`
}

// Catalog es la lista ordenada de programas; el orden define el desempate del ranking.
type Catalog struct {
	Programs []ProgramDefinition `json:"programs" yaml:"programs"`
}

// Find busca por codigo sin distinguir mayusculas.
func (c Catalog) Find(code string) (ProgramDefinition, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, p := range c.Programs {
		if strings.ToUpper(p.Code) == code {
			return p, true
		}
	}
	return ProgramDefinition{}, false
}

// DefaultCatalog devuelve una copia nueva del catalogo estandar.
func DefaultCatalog() Catalog {
	return Catalog{Programs: []ProgramDefinition{
		{
			Code:                       ProgramSTE,
			Name:                       "Science, Technology, Engineering",
			AcademicRule:               AcademicRuleHonorsExamPassed,
			NonAcademicRule:            SurveyRuleSTE,
			RequiresQualificationCheck: true,
			ConfirmationGate:           true,
			TotalCriteria:              6,
		},
		{
			Code:            ProgramSPFL,
			Name:            "Specialized in Foreign Languages",
			AcademicRule:    AcademicRuleHonorsNoExam,
			NonAcademicRule: SurveyRuleSPFL,
			TotalCriteria:   5,
		},
		{
			Code:            ProgramSPTVE,
			Name:            "Specialized in Technology, Vocational & English",
			AcademicRule:    AcademicRuleHonorsNoExam,
			NonAcademicRule: SurveyRuleSPTVE,
			TotalCriteria:   5,
		},
		{
			Code:            ProgramSNEDL,
			Name:            "Special Needs Education Program",
			AcademicRule:    AcademicRuleDisability,
			NonAcademicRule: SurveyRuleDisability,
			TotalCriteria:   2,
		},
		{
			Code:            ProgramOHSP,
			Name:            "Out-of-School Youth Program",
			AcademicRule:    AcademicRuleWorkingStudent,
			NonAcademicRule: SurveyRuleWorkingStudent,
			TotalCriteria:   2,
		},
		{
			Code:            ProgramRegular,
			Name:            "Regular Program",
			AcademicRule:    AcademicRuleAverage89Below,
			NonAcademicRule: SurveyRuleAverageStudent,
			TotalCriteria:   2,
		},
	}}
}
