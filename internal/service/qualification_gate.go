package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"school-placement/internal/domain"
	"school-placement/internal/repository"
)

// QualificationGate resuelve si el estudiante esta en la lista de calificados de un programa.
type QualificationGate struct {
	repo   repository.QualificationRepository
	logger *zap.Logger
}

func NewQualificationGate(repo repository.QualificationRepository, logger *zap.Logger) *QualificationGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QualificationGate{repo: repo, logger: logger}
}

// uncachedSource lo implementan los repositorios que ponen una cache delante de otro.
type uncachedSource interface {
	Uncached() repository.QualificationRepository
}

// Authoritative devuelve un gate que lee del almacenamiento sin pasar por la cache.
func (g *QualificationGate) Authoritative() *QualificationGate {
	if g == nil {
		return nil
	}
	if src, ok := g.repo.(uncachedSource); ok {
		return &QualificationGate{repo: src.Uncached(), logger: g.logger}
	}
	return g
}

// Check toma el registro con updated_at mas reciente; los duplicados viejos quedan sombreados.
// Un error de la consulta se reporta como ErrQualificationLookupUnavailable, nunca como "no calificado".
func (g *QualificationGate) Check(ctx context.Context, studentID, programCode string) (domain.QualificationCheck, error) {
	check := domain.QualificationCheck{
		StudentID:   strings.TrimSpace(studentID),
		ProgramCode: strings.ToUpper(strings.TrimSpace(programCode)),
	}
	if g == nil || g.repo == nil {
		return check, fmt.Errorf("%w: qualification repository not configured", ErrQualificationLookupUnavailable)
	}
	if check.StudentID == "" {
		return check, nil
	}

	records, err := g.repo.FindByStudentID(ctx, check.ProgramCode, check.StudentID)
	if err != nil {
		g.logger.Error("qualification lookup failed",
			zap.String("student_id", check.StudentID),
			zap.String("program", check.ProgramCode),
			zap.Error(err),
		)
		return check, fmt.Errorf("%w: %w", ErrQualificationLookupUnavailable, err)
	}

	latest, ok := latestQualification(records)
	if !ok {
		return check, nil
	}

	check.Found = true
	check.Record = &latest
	check.Qualified = latest.Status == domain.QualificationQualified
	check.Duplicates = len(records) - 1
	if check.Duplicates > 0 {
		// TODO: exponer los duplicados en el panel del coordinador para depurarlos.
		g.logger.Warn("duplicate qualification records",
			zap.String("student_id", check.StudentID),
			zap.String("program", check.ProgramCode),
			zap.Int("records", len(records)),
			zap.Int64("resolved_id", latest.ID),
		)
	}
	return check, nil
}

// LatestByStudents devuelve el registro vigente por estudiante para vistas en lote.
func (g *QualificationGate) LatestByStudents(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	if g == nil || g.repo == nil {
		return nil, fmt.Errorf("%w: qualification repository not configured", ErrQualificationLookupUnavailable)
	}
	out, err := g.repo.FindLatestByStudentIDs(ctx, strings.ToUpper(strings.TrimSpace(programCode)), studentIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQualificationLookupUnavailable, err)
	}
	return out, nil
}

// latestQualification no confia en el orden del repositorio.
func latestQualification(records []domain.QualificationRecord) (domain.QualificationRecord, bool) {
	if len(records) == 0 {
		return domain.QualificationRecord{}, false
	}
	latest := records[0]
	for _, r := range records[1:] {
		if r.UpdatedAt.After(latest.UpdatedAt) {
			latest = r
		}
	}
	return latest, true
}
