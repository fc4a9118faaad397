package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"school-placement/internal/domain"
	"school-placement/internal/repository"
	"school-placement/internal/service"
)

// PlacementHandler expone el motor de recomendación y la confirmación de programa.
type PlacementHandler struct {
	logger         *zap.Logger
	engine         *service.RecommendationEngine
	confirmations  *service.ConfirmationService
	qualifications *service.QualificationGate
	students       repository.StudentRepository
}

// NewPlacementHandler crea el handler con sus dependencias.
func NewPlacementHandler(
	logger *zap.Logger,
	engine *service.RecommendationEngine,
	confirmations *service.ConfirmationService,
	qualifications *service.QualificationGate,
	students repository.StudentRepository,
) *PlacementHandler {
	return &PlacementHandler{
		logger:         logger,
		engine:         engine,
		confirmations:  confirmations,
		qualifications: qualifications,
		students:       students,
	}
}

// academicPayload acepta notas de cualquier tipo; una materia con valor no numerico queda ausente.
type academicPayload struct {
	Scores     map[string]any `json:"scores"`
	ExamResult string         `json:"exam_result"`
}

func (p academicPayload) toRecord() domain.AcademicRecord {
	return domain.AcademicRecord{
		Scores:     domain.ScoresFromValues(p.Scores),
		ExamResult: domain.ParseExamResult(p.ExamResult),
	}
}

// ListPrograms maneja GET /programs.
func (h *PlacementHandler) ListPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"programs": h.engine.Catalog().Programs})
}

// Recommend maneja POST /recommendations con una foto enviada por el llamador.
func (h *PlacementHandler) Recommend(c *gin.Context) {
	var req struct {
		StudentID string               `json:"student_id" binding:"required"`
		Academic  academicPayload      `json:"academic"`
		Survey    domain.SurveyAnswers `json:"survey"`
		Flags     domain.StudentFlags  `json:"flags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recommendation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	snapshot := domain.StudentSnapshot{
		StudentID: strings.TrimSpace(req.StudentID),
		Academic:  req.Academic.toRecord(),
		Survey:    req.Survey.ToRecord(),
		Flags:     req.Flags,
	}
	h.respondRecommendations(c, snapshot)
}

// RecommendForStudent maneja GET /students/:student_id/recommendations usando los datos guardados.
func (h *PlacementHandler) RecommendForStudent(c *gin.Context) {
	snapshot, ok := h.loadSnapshot(c, c.Param("student_id"))
	if !ok {
		return
	}
	h.respondRecommendations(c, snapshot)
}

func (h *PlacementHandler) respondRecommendations(c *gin.Context, snapshot domain.StudentSnapshot) {
	summary, err := h.engine.Recommend(c.Request.Context(), snapshot)
	if err != nil {
		h.writeServiceError(c, err, "could not generate recommendations")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ConfirmSelection maneja POST /selections/confirm. Revalida desde los registros guardados,
// nunca desde datos de ranking enviados por el cliente.
func (h *PlacementHandler) ConfirmSelection(c *gin.Context) {
	var req struct {
		StudentID   string `json:"student_id" binding:"required"`
		ProgramCode string `json:"program_code" binding:"required"`
		Reason      string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid confirm request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	snapshot, ok := h.loadSnapshot(c, req.StudentID)
	if !ok {
		return
	}

	selection, err := h.confirmations.Confirm(c.Request.Context(), service.ConfirmationRequest{
		StudentID:   snapshot.StudentID,
		ProgramCode: req.ProgramCode,
		Reason:      req.Reason,
		Academic:    snapshot.Academic,
		Flags:       snapshot.Flags,
	})
	if err != nil {
		h.writeServiceError(c, err, "could not confirm selection")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"selection": selection})
}

// ListQualifications maneja GET /qualifications/:program_code?student_ids=a,b.
func (h *PlacementHandler) ListQualifications(c *gin.Context) {
	var ids []string
	for _, id := range strings.Split(c.Query("student_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_ids is required"})
		return
	}

	records, err := h.qualifications.LatestByStudents(c.Request.Context(), c.Param("program_code"), ids)
	if err != nil {
		h.writeServiceError(c, err, "could not fetch qualifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qualifications": records})
}

func (h *PlacementHandler) loadSnapshot(c *gin.Context, studentID string) (domain.StudentSnapshot, bool) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "student_id is required"})
		return domain.StudentSnapshot{}, false
	}

	snapshot, err := h.students.GetSnapshot(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return domain.StudentSnapshot{}, false
		}
		h.logger.Error("load student snapshot failed", zap.String("student_id", studentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load student"})
		return domain.StudentSnapshot{}, false
	}
	return snapshot, true
}

func (h *PlacementHandler) writeServiceError(c *gin.Context, err error, fallback string) {
	var rejected *service.ConfirmationRejectedError
	switch {
	case errors.As(err, &rejected):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        rejected.Message,
			"reason":       rejected.Reason,
			"program_code": rejected.ProgramCode,
			"unmet":        rejected.Unmet,
		})
	case errors.Is(err, service.ErrUnknownProgram):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown program"})
	case errors.Is(err, service.ErrQualificationLookupUnavailable):
		h.logger.Error("qualification lookup unavailable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "qualification list unavailable, try again later"})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
