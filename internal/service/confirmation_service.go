package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"school-placement/internal/domain"
	"school-placement/internal/repository"
)

// Motivos de rechazo de una confirmacion.
const (
	RejectionAcademic      = "academic_requirements"
	RejectionQualification = "qualification_list"
)

// ConfirmationRejectedError es un fallo de validacion visible al usuario, con los valores concretos.
type ConfirmationRejectedError struct {
	ProgramCode string
	Reason      string
	Message     string
	Unmet       []domain.UnmetCondition
}

func (e *ConfirmationRejectedError) Error() string {
	if len(e.Unmet) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Unmet))
	for _, u := range e.Unmet {
		parts = append(parts, fmt.Sprintf("%s is %s (required %s)", u.Field, u.Current, u.Required))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// ConfirmationRequest lleva la foto autoritativa del estudiante, no datos de ranking del cliente.
type ConfirmationRequest struct {
	StudentID   string
	ProgramCode string
	Reason      string
	Academic    domain.AcademicRecord
	Flags       domain.StudentFlags
}

// ProgramGate valida la eleccion de un programa antes de finalizarla.
type ProgramGate interface {
	Validate(ctx context.Context, program domain.ProgramDefinition, req ConfirmationRequest) error
}

// ProgramGateFunc adapta una funcion a ProgramGate.
type ProgramGateFunc func(ctx context.Context, program domain.ProgramDefinition, req ConfirmationRequest) error

func (f ProgramGateFunc) Validate(ctx context.Context, program domain.ProgramDefinition, req ConfirmationRequest) error {
	return f(ctx, program, req)
}

// academicGate recalcula la regla academica del programa desde cero.
type academicGate struct {
	evaluator *CriteriaEvaluator
}

func (g academicGate) Validate(_ context.Context, program domain.ProgramDefinition, req ConfirmationRequest) error {
	unmet, err := g.evaluator.AcademicUnmet(program, req.Academic, req.Flags)
	if err != nil {
		return err
	}
	if len(unmet) > 0 {
		return &ConfirmationRejectedError{
			ProgramCode: program.Code,
			Reason:      RejectionAcademic,
			Message:     fmt.Sprintf("Student does not meet the %s academic requirements", program.Code),
			Unmet:       unmet,
		}
	}
	return nil
}

// qualificationListGate exige estado "qualified" en la lista del programa.
type qualificationListGate struct {
	gate *QualificationGate
}

func (g qualificationListGate) Validate(ctx context.Context, program domain.ProgramDefinition, req ConfirmationRequest) error {
	check, err := g.gate.Check(ctx, req.StudentID, program.Code)
	if err != nil {
		return err
	}
	if check.Qualified {
		return nil
	}
	current := "not found"
	if check.Found {
		current = string(check.Record.Status)
	}
	return &ConfirmationRejectedError{
		ProgramCode: program.Code,
		Reason:      RejectionQualification,
		Message: fmt.Sprintf("Student is not on the %s qualification list. "+
			"Please contact an administrator or choose another program", program.Code),
		Unmet: []domain.UnmetCondition{{
			Field:    "qualification_status",
			Current:  current,
			Required: string(domain.QualificationQualified),
		}},
	}
}

// ConfirmationService finaliza la eleccion de programa revalidando elegibilidad.
type ConfirmationService struct {
	catalog    domain.Catalog
	gates      map[string][]ProgramGate
	selections repository.SelectionRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewConfirmationService arma los gates por programa desde el catalogo:
// ConfirmationGate agrega el recalculo academico y RequiresQualificationCheck la lista.
// La lista se lee siempre sin cache aunque qualifications tenga una delante.
// selections puede ser nil (no se persiste).
func NewConfirmationService(
	catalog domain.Catalog,
	evaluator *CriteriaEvaluator,
	qualifications *QualificationGate,
	selections repository.SelectionRepository,
	logger *zap.Logger,
) *ConfirmationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if evaluator == nil {
		evaluator = NewCriteriaEvaluator()
	}
	s := &ConfirmationService{
		catalog:    catalog,
		gates:      make(map[string][]ProgramGate),
		selections: selections,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	qualifications = qualifications.Authoritative()
	for _, p := range catalog.Programs {
		if p.ConfirmationGate {
			s.RegisterGate(p.Code, academicGate{evaluator: evaluator})
		}
		if p.RequiresQualificationCheck {
			s.RegisterGate(p.Code, qualificationListGate{gate: qualifications})
		}
	}
	return s
}

// RegisterGate agrega un gate al final de la cadena del programa.
func (s *ConfirmationService) RegisterGate(programCode string, gate ProgramGate) {
	code := strings.ToUpper(strings.TrimSpace(programCode))
	s.gates[code] = append(s.gates[code], gate)
}

// Confirm valida y, si pasa, persiste la eleccion. Un rechazo nunca se persiste.
func (s *ConfirmationService) Confirm(ctx context.Context, req ConfirmationRequest) (domain.ProgramSelection, error) {
	program, ok := s.catalog.Find(req.ProgramCode)
	if !ok {
		return domain.ProgramSelection{}, fmt.Errorf("%w: %q", ErrUnknownProgram, req.ProgramCode)
	}

	for _, gate := range s.gates[strings.ToUpper(program.Code)] {
		if err := gate.Validate(ctx, program, req); err != nil {
			s.logger.Info("program confirmation rejected",
				zap.String("student_id", req.StudentID),
				zap.String("program", program.Code),
				zap.Error(err),
			)
			return domain.ProgramSelection{}, err
		}
	}

	selection := domain.ProgramSelection{
		ID:                 uuid.NewString(),
		StudentID:          req.StudentID,
		ProgramCode:        program.Code,
		ProgramDescription: program.Name,
		SelectionReason:    strings.TrimSpace(req.Reason),
		CreatedAt:          s.now(),
	}
	if s.selections != nil {
		stored, err := s.selections.Save(ctx, selection)
		if err != nil {
			return domain.ProgramSelection{}, fmt.Errorf("save program selection: %w", err)
		}
		selection = stored
	}

	s.logger.Info("program confirmed",
		zap.String("student_id", req.StudentID),
		zap.String("program", program.Code),
	)
	return selection, nil
}
