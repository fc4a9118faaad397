package service

import (
	"fmt"
	"strconv"
	"strings"

	"school-placement/internal/domain"
)

/*
========================
 Reglas academicas
========================
*/

// academicRule otorga score fijo cuando no hay sub-condiciones incumplidas.
// No hay puntaje parcial ni interpolado.
type academicRule struct {
	score float64
	unmet func(rec domain.AcademicRecord, flags domain.StudentFlags) []domain.UnmetCondition
}

const (
	honorsMinAverage = 90.0
	honorsMinSubject = 85.0
	regularMaxAvg    = 89.0
)

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// honorsUnmet evalua promedio >= 90 y todas las materias >= 85.
func honorsUnmet(rec domain.AcademicRecord) []domain.UnmetCondition {
	var unmet []domain.UnmetCondition

	avg := rec.OverallAverage()
	if avg < honorsMinAverage {
		unmet = append(unmet, domain.UnmetCondition{
			Field:    "overall_average",
			Current:  formatScore(avg),
			Required: formatScore(honorsMinAverage),
		})
	}

	min, ok := rec.MinScore()
	if !ok || min < honorsMinSubject {
		current := "none"
		if ok {
			current = formatScore(min)
		}
		unmet = append(unmet, domain.UnmetCondition{
			Field:    "minimum_subject_score",
			Current:  current,
			Required: formatScore(honorsMinSubject),
		})
	}
	return unmet
}

var defaultAcademicRules = map[string]academicRule{
	domain.AcademicRuleHonorsExamPassed: {
		score: 100,
		unmet: func(rec domain.AcademicRecord, _ domain.StudentFlags) []domain.UnmetCondition {
			unmet := honorsUnmet(rec)
			if rec.ExamResult != domain.ExamPassed {
				unmet = append(unmet, domain.UnmetCondition{
					Field:    "exam_result",
					Current:  rec.ExamResult.String(),
					Required: string(domain.ExamPassed),
				})
			}
			return unmet
		},
	},
	// Quien supera el promedio alto sin aprobar el examen va a los tracks especializados.
	domain.AcademicRuleHonorsNoExam: {
		score: 90,
		unmet: func(rec domain.AcademicRecord, _ domain.StudentFlags) []domain.UnmetCondition {
			unmet := honorsUnmet(rec)
			if rec.ExamResult == domain.ExamPassed {
				unmet = append(unmet, domain.UnmetCondition{
					Field:    "exam_result",
					Current:  rec.ExamResult.String(),
					Required: "not passed",
				})
			}
			return unmet
		},
	},
	domain.AcademicRuleAverage89Below: {
		score: 80,
		unmet: func(rec domain.AcademicRecord, _ domain.StudentFlags) []domain.UnmetCondition {
			if avg := rec.OverallAverage(); avg > regularMaxAvg {
				return []domain.UnmetCondition{{
					Field:    "overall_average",
					Current:  formatScore(avg),
					Required: "at most " + formatScore(regularMaxAvg),
				}}
			}
			return nil
		},
	},
	domain.AcademicRuleDisability: {
		score: 100,
		unmet: func(_ domain.AcademicRecord, flags domain.StudentFlags) []domain.UnmetCondition {
			if !flags.HasDisability {
				return []domain.UnmetCondition{{Field: "has_disability", Current: "false", Required: "true"}}
			}
			return nil
		},
	},
	domain.AcademicRuleWorkingStudent: {
		score: 100,
		unmet: func(_ domain.AcademicRecord, flags domain.StudentFlags) []domain.UnmetCondition {
			if !flags.IsWorkingStudent {
				return []domain.UnmetCondition{{Field: "is_working_student", Current: "false", Required: "true"}}
			}
			return nil
		},
	},
}

/*
========================
 Reglas de encuesta
========================
*/

// condition es un predicado sobre la foto del estudiante.
type condition func(s domain.StudentSnapshot) bool

// surveyRule con minMet == 0 puntua proporcionalmente (cumplidas/total * 100).
// Con minMet > 0 otorga score fijo si se cumplen al menos minMet condiciones.
type surveyRule struct {
	conditions []condition
	minMet     int
	score      float64
}

func interest(tags ...string) condition {
	return func(s domain.StudentSnapshot) bool {
		for _, t := range tags {
			if s.Survey.HasInterest(t) {
				return true
			}
		}
		return false
	}
}

func trait(name string) condition {
	return func(s domain.StudentSnapshot) bool { return s.Survey.HasTrait(name) }
}

func lacksTrait(name string) condition {
	return func(s domain.StudentSnapshot) bool { return !s.Survey.HasTrait(name) }
}

func hasDisability(s domain.StudentSnapshot) bool { return s.Flags.HasDisability }

func isWorkingStudent(s domain.StudentSnapshot) bool { return s.Flags.IsWorkingStudent }

var defaultSurveyRules = map[string]surveyRule{
	domain.SurveyRuleSTE: {conditions: []condition{
		interest("science"),
		interest("math", "mathematics"),
		interest("english"),
		trait(domain.TraitActive),
		trait(domain.TraitStudious),
		trait(domain.TraitSmart),
	}},
	domain.SurveyRuleSPFL: {conditions: []condition{
		interest("english"),
		interest("foreign language", "language"),
		interest("arts"),
		interest("tourism"),
		trait(domain.TraitActive),
		trait(domain.TraitStudious),
	}},
	domain.SurveyRuleSPTVE: {conditions: []condition{
		interest("english"),
		interest("technology", "tech"),
		interest("arts"),
		interest("crafts"),
		trait(domain.TraitCreative),
		trait(domain.TraitStudious),
		trait(domain.TraitSmart),
		trait(domain.TraitArtistic),
	}},
	domain.SurveyRuleDisability: {
		conditions: []condition{hasDisability},
		minMet:     1,
		score:      100,
	},
	domain.SurveyRuleWorkingStudent: {
		conditions: []condition{isWorkingStudent},
		minMet:     1,
		score:      100,
	},
	// Estudiante promedio: no destaca en los rasgos que llevan a un track especial.
	domain.SurveyRuleAverageStudent: {
		conditions: []condition{
			lacksTrait(domain.TraitStudious),
			lacksTrait(domain.TraitSmart),
			lacksTrait(domain.TraitActive),
		},
		minMet: 2,
		score:  80,
	},
}

// evaluate devuelve el score y si la regla produjo puntaje.
func (r surveyRule) evaluate(s domain.StudentSnapshot) (float64, bool) {
	met := 0
	for _, c := range r.conditions {
		if c(s) {
			met++
		}
	}
	if r.minMet > 0 {
		return r.score, met >= r.minMet
	}
	if len(r.conditions) == 0 {
		return 0, true
	}
	return float64(met) / float64(len(r.conditions)) * 100, true
}

/*
========================
 Evaluador
========================
*/

// CriteriaEvaluator puntua un estudiante contra las reglas del catalogo.
type CriteriaEvaluator struct {
	academic map[string]academicRule
	survey   map[string]surveyRule
}

// NewCriteriaEvaluator usa las tablas de reglas por defecto.
func NewCriteriaEvaluator() *CriteriaEvaluator {
	return &CriteriaEvaluator{
		academic: defaultAcademicRules,
		survey:   defaultSurveyRules,
	}
}

// Validate verifica que todas las reglas del catalogo existan.
func (e *CriteriaEvaluator) Validate(catalog domain.Catalog) error {
	if len(catalog.Programs) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(catalog.Programs))
	for _, p := range catalog.Programs {
		if p.Code == "" {
			return fmt.Errorf("%w: program without code", ErrInvalidCatalog)
		}
		// Find busca sin distinguir mayusculas, asi que "ste" duplica a "STE".
		key := strings.ToUpper(strings.TrimSpace(p.Code))
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate program %s", ErrInvalidCatalog, p.Code)
		}
		seen[key] = struct{}{}
		if _, ok := e.academic[p.AcademicRule]; !ok {
			return fmt.Errorf("%w: program %s: unknown academic rule %q", ErrInvalidCatalog, p.Code, p.AcademicRule)
		}
		if _, ok := e.survey[p.NonAcademicRule]; !ok {
			return fmt.Errorf("%w: program %s: unknown non-academic rule %q", ErrInvalidCatalog, p.Code, p.NonAcademicRule)
		}
	}
	return nil
}

// AcademicScores devuelve solo los programas con score academico; ausente != cero.
func (e *CriteriaEvaluator) AcademicScores(catalog domain.Catalog, s domain.StudentSnapshot) map[string]float64 {
	scores := make(map[string]float64)
	for _, p := range catalog.Programs {
		rule, ok := e.academic[p.AcademicRule]
		if !ok {
			continue
		}
		if len(rule.unmet(s.Academic, s.Flags)) == 0 {
			scores[p.Code] = rule.score
		}
	}
	return scores
}

// NonAcademicScores aplica la tabla de checklists de encuesta.
func (e *CriteriaEvaluator) NonAcademicScores(catalog domain.Catalog, s domain.StudentSnapshot) map[string]float64 {
	scores := make(map[string]float64)
	for _, p := range catalog.Programs {
		rule, ok := e.survey[p.NonAcademicRule]
		if !ok {
			continue
		}
		if score, ok := rule.evaluate(s); ok {
			scores[p.Code] = score
		}
	}
	return scores
}

// AcademicUnmet recalcula la regla academica del programa y devuelve lo incumplido.
func (e *CriteriaEvaluator) AcademicUnmet(program domain.ProgramDefinition, academic domain.AcademicRecord, flags domain.StudentFlags) ([]domain.UnmetCondition, error) {
	rule, ok := e.academic[program.AcademicRule]
	if !ok {
		return nil, fmt.Errorf("%w: program %s: unknown academic rule %q", ErrInvalidCatalog, program.Code, program.AcademicRule)
	}
	return rule.unmet(academic, flags), nil
}
