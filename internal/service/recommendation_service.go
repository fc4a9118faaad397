package service

import (
	"context"
	"errors"
	"math"
	"sort"

	"go.uber.org/zap"

	"school-placement/internal/domain"
)

var (
	ErrEmptyCatalog                   = errors.New("program catalog is empty")
	ErrInvalidCatalog                 = errors.New("invalid program catalog")
	ErrUnknownProgram                 = errors.New("unknown program")
	ErrQualificationLookupUnavailable = errors.New("qualification lookup unavailable")
)

const (
	topRecommendations = 3

	messageSuccess           = "Program recommendations generated successfully."
	messageNoRecommendations = "Unable to generate recommendations. Please ensure all data is complete."
)

// RecommendationEngine puntua, agrega y rankea programas para un estudiante.
// No guarda estado entre llamadas; es seguro usarlo en paralelo.
type RecommendationEngine struct {
	catalog   domain.Catalog
	evaluator *CriteriaEvaluator
	gate      *QualificationGate
	logger    *zap.Logger
}

// NewRecommendationEngine valida el catalogo contra las reglas conocidas.
// gate puede ser nil: en ese caso solo se adjunta el marcador descriptivo.
func NewRecommendationEngine(catalog domain.Catalog, gate *QualificationGate, logger *zap.Logger) (*RecommendationEngine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	evaluator := NewCriteriaEvaluator()
	if err := evaluator.Validate(catalog); err != nil {
		return nil, err
	}
	return &RecommendationEngine{
		catalog:   catalog,
		evaluator: evaluator,
		gate:      gate,
		logger:    logger,
	}, nil
}

// Catalog expone el catalogo configurado.
func (e *RecommendationEngine) Catalog() domain.Catalog {
	return e.catalog
}

// Evaluator expone el evaluador para la confirmacion.
func (e *RecommendationEngine) Evaluator() *CriteriaEvaluator {
	return e.evaluator
}

// Recommend ejecuta evaluacion, agregacion, ranking y la verificacion de listas.
// Una caida de la lista de calificados devuelve ErrQualificationLookupUnavailable.
func (e *RecommendationEngine) Recommend(ctx context.Context, s domain.StudentSnapshot) (domain.RecommendationSummary, error) {
	ranked := RankRecommendations(e.BuildCandidates(s))

	if e.gate != nil {
		for i := range ranked {
			program, ok := e.catalog.Find(ranked[i].ProgramCode)
			if !ok || !program.RequiresQualificationCheck {
				continue
			}
			check, err := e.gate.Check(ctx, s.StudentID, program.Code)
			if err != nil {
				return domain.RecommendationSummary{}, err
			}
			ranked[i].SpecialChecks = append(ranked[i].SpecialChecks, qualificationNotice(program, check))
		}
	}

	summary := Summarize(ranked)
	e.logger.Info("recommendations generated",
		zap.String("student_id", s.StudentID),
		zap.String("status", summary.Status),
		zap.Int("candidates", summary.TotalRecommendations),
	)
	return summary, nil
}

// BuildCandidates arma un candidato por programa con algun score > 0, en orden de catalogo.
func (e *RecommendationEngine) BuildCandidates(s domain.StudentSnapshot) []domain.RecommendationResult {
	academic := e.evaluator.AcademicScores(e.catalog, s)
	nonAcademic := e.evaluator.NonAcademicScores(e.catalog, s)

	var out []domain.RecommendationResult
	for _, p := range e.catalog.Programs {
		a := academic[p.Code]
		n := nonAcademic[p.Code]
		if a <= 0 && n <= 0 {
			continue
		}

		// Un eje ausente cuenta como 0: calificar en un solo eje divide el overall a la mitad.
		overall := (a + n) / 2
		rec := domain.RecommendationResult{
			ProgramCode:      p.Code,
			ProgramName:      p.Name,
			AcademicScore:    a,
			NonAcademicScore: n,
			OverallScore:     overall,
			PercentageMatch:  int(math.RoundToEven(overall)),
			TotalCriteria:    p.TotalCriteria,
			CriteriaMet:      criteriaMet(a, n),
			SpecialChecks:    []domain.SpecialCheck{},
		}
		if p.RequiresQualificationCheck {
			rec.SpecialChecks = append(rec.SpecialChecks, domain.SpecialCheck{
				Type:        domain.CheckQualificationRequired,
				Description: "Verify student in the " + p.Code + " qualification list before confirming this program",
				Required:    true,
			})
		}
		out = append(out, rec)
	}
	return out
}

func criteriaMet(academic, nonAcademic float64) []string {
	met := []string{}
	if academic > 0 {
		met = append(met, domain.CriteriaAcademic)
	}
	if nonAcademic > 0 {
		met = append(met, domain.CriteriaNonAcademic)
	}
	return met
}

// RankRecommendations ordena por overall desc; los empates conservan el orden de entrada.
func RankRecommendations(candidates []domain.RecommendationResult) []domain.RecommendationResult {
	ranked := make([]domain.RecommendationResult, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
		ranked[i].RecommendationLevel = RecommendationLevel(ranked[i].PercentageMatch)
	}
	return ranked
}

// RecommendationLevel traduce percentage_match a la etiqueta cualitativa.
func RecommendationLevel(percentage int) string {
	switch {
	case percentage >= 100:
		return domain.LevelStrong
	case percentage >= 80:
		return domain.LevelGood
	case percentage >= 50:
		return domain.LevelFair
	default:
		return domain.LevelWeak
	}
}

// Summarize expone el top 3 y conserva la lista completa.
func Summarize(ranked []domain.RecommendationResult) domain.RecommendationSummary {
	if len(ranked) == 0 {
		return domain.RecommendationSummary{
			Status:             domain.SummaryStatusNoRecommendations,
			Message:            messageNoRecommendations,
			Recommendations:    []domain.RecommendationResult{},
			AllRecommendations: []domain.RecommendationResult{},
		}
	}
	top := ranked
	if len(top) > topRecommendations {
		top = ranked[:topRecommendations]
	}
	return domain.RecommendationSummary{
		Status:               domain.SummaryStatusSuccess,
		Message:              messageSuccess,
		Recommendations:      top,
		TotalRecommendations: len(ranked),
		AllRecommendations:   ranked,
	}
}

func qualificationNotice(program domain.ProgramDefinition, check domain.QualificationCheck) domain.SpecialCheck {
	if check.Qualified {
		return domain.SpecialCheck{
			Type:        domain.CheckQualificationVerified,
			Description: "Student is on the " + program.Code + " qualification list with status qualified",
		}
	}
	return domain.SpecialCheck{
		Type: domain.CheckQualificationFailed,
		Description: "Student is not on the " + program.Code + " qualification list with status qualified. " +
			"Please choose an alternate program or contact an administrator.",
		Required: true,
		Blocking: true,
	}
}
