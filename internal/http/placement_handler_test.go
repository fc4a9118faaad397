package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"school-placement/internal/domain"
	"school-placement/internal/service"
)

type mockStudentRepo struct {
	snapshots map[string]domain.StudentSnapshot
	err       error
}

func (m *mockStudentRepo) GetSnapshot(_ context.Context, id string) (domain.StudentSnapshot, error) {
	if m.err != nil {
		return domain.StudentSnapshot{}, m.err
	}
	s, ok := m.snapshots[id]
	if !ok {
		return domain.StudentSnapshot{}, pgx.ErrNoRows
	}
	return s, nil
}

type mockQualificationRepo struct {
	records []domain.QualificationRecord
	err     error
}

func (m *mockQualificationRepo) FindByStudentID(_ context.Context, _ string, studentID string) ([]domain.QualificationRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.QualificationRecord
	for _, r := range m.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockQualificationRepo) FindLatestByStudentIDs(_ context.Context, _ string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := map[string]domain.QualificationRecord{}
	for _, id := range studentIDs {
		for _, r := range m.records {
			if r.StudentID == id && r.UpdatedAt.After(out[id].UpdatedAt) {
				out[id] = r
			}
		}
	}
	return out, nil
}

type mockSelectionRepo struct {
	saved []domain.ProgramSelection
}

func (m *mockSelectionRepo) Save(_ context.Context, s domain.ProgramSelection) (domain.ProgramSelection, error) {
	m.saved = append(m.saved, s)
	return s, nil
}

func honorsRecord(exam domain.ExamResult) domain.AcademicRecord {
	rec := domain.AcademicRecord{Scores: map[string]*float64{}, ExamResult: exam}
	for _, s := range domain.StandardSubjects {
		rec.Scores[s] = domain.Score(95)
	}
	return rec
}

func setupPlacementRouter(t *testing.T, students *mockStudentRepo, quals *mockQualificationRepo, selections *mockSelectionRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := domain.DefaultCatalog()
	gate := service.NewQualificationGate(quals, zap.NewNop())
	engine, err := service.NewRecommendationEngine(catalog, gate, zap.NewNop())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	confirmations := service.NewConfirmationService(catalog, engine.Evaluator(), gate, selections, zap.NewNop())
	h := NewPlacementHandler(zap.NewNop(), engine, confirmations, gate, students)
	return NewRouter(zap.NewNop(), h)
}

func performPlacementRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPlacementHandlerListPrograms(t *testing.T) {
	r := setupPlacementRouter(t, &mockStudentRepo{}, &mockQualificationRepo{}, &mockSelectionRepo{})

	rec := performPlacementRequest(r, http.MethodGet, "/programs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Programs []domain.ProgramDefinition `json:"programs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Programs) != 6 || resp.Programs[0].Code != domain.ProgramSTE {
		t.Fatalf("unexpected catalog: %+v", resp.Programs)
	}
}

func TestPlacementHandlerRecommend_FromPayload(t *testing.T) {
	r := setupPlacementRouter(t, &mockStudentRepo{}, &mockQualificationRepo{}, &mockSelectionRepo{})

	scores := map[string]float64{}
	for _, s := range domain.StandardSubjects {
		scores[s] = 95
	}
	rec := performPlacementRequest(r, http.MethodPost, "/recommendations", map[string]any{
		"student_id": "S-1",
		"academic":   map[string]any{"scores": scores, "exam_result": "Passed"},
		"survey": map[string]any{
			"interested_science": "Yes",
			"interested_math":    true,
			"interested_english": "yes",
			"is_active":          "No",
			"potential_genius":   true,
			"is_studious":        true,
			"is_smart":           "true",
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary domain.RecommendationSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Status != domain.SummaryStatusSuccess || len(summary.Recommendations) == 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	top := summary.Recommendations[0]
	if top.ProgramCode != domain.ProgramSTE || top.PercentageMatch != 100 {
		t.Fatalf("expected STE at 100%%, got %+v", top)
	}
	if !top.Blocked() {
		t.Fatalf("expected STE blocked without a qualification record")
	}
}

func TestPlacementHandlerRecommend_NonNumericScoreIsAbsent(t *testing.T) {
	r := setupPlacementRouter(t, &mockStudentRepo{}, &mockQualificationRepo{}, &mockSelectionRepo{})

	scores := map[string]any{}
	for _, s := range domain.StandardSubjects {
		scores[s] = 95
	}
	scores[domain.SubjectMAPEH] = "n/a"
	scores[domain.SubjectFilipino] = nil

	rec := performPlacementRequest(r, http.MethodPost, "/recommendations", map[string]any{
		"student_id": "S-1",
		"academic":   map[string]any{"scores": scores, "exam_result": "passed"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary domain.RecommendationSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if summary.Status != domain.SummaryStatusSuccess {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	var ste *domain.RecommendationResult
	for i := range summary.AllRecommendations {
		if summary.AllRecommendations[i].ProgramCode == domain.ProgramSTE {
			ste = &summary.AllRecommendations[i]
		}
	}
	if ste == nil || ste.AcademicScore != 100 {
		t.Fatalf("expected remaining scores to meet STE academic criteria, got %+v", ste)
	}
}

func TestPlacementHandlerRecommend_InvalidBody(t *testing.T) {
	r := setupPlacementRouter(t, &mockStudentRepo{}, &mockQualificationRepo{}, &mockSelectionRepo{})

	rec := performPlacementRequest(r, http.MethodPost, "/recommendations", map[string]any{"academic": map[string]any{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestPlacementHandlerRecommendForStudent(t *testing.T) {
	students := &mockStudentRepo{snapshots: map[string]domain.StudentSnapshot{
		"S-2": {StudentID: "S-2", Academic: honorsRecord(domain.ExamFailed)},
	}}
	r := setupPlacementRouter(t, students, &mockQualificationRepo{}, &mockSelectionRepo{})

	rec := performPlacementRequest(r, http.MethodGet, "/students/S-2/recommendations", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	rec = performPlacementRequest(r, http.MethodGet, "/students/missing/recommendations", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPlacementHandlerRecommend_LookupDown(t *testing.T) {
	students := &mockStudentRepo{snapshots: map[string]domain.StudentSnapshot{
		"S-1": {StudentID: "S-1", Academic: honorsRecord(domain.ExamPassed)},
	}}
	r := setupPlacementRouter(t, students, &mockQualificationRepo{err: errors.New("down")}, &mockSelectionRepo{})

	rec := performPlacementRequest(r, http.MethodGet, "/students/S-1/recommendations", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestPlacementHandlerConfirmSelection(t *testing.T) {
	students := &mockStudentRepo{snapshots: map[string]domain.StudentSnapshot{
		"S-1": {StudentID: "S-1", Academic: honorsRecord(domain.ExamPassed)},
		"S-2": {StudentID: "S-2", Academic: honorsRecord(domain.ExamFailed)},
	}}
	quals := &mockQualificationRepo{records: []domain.QualificationRecord{{
		ID:        1,
		StudentID: "S-1",
		Status:    domain.QualificationQualified,
		UpdatedAt: time.Now().UTC(),
	}}}
	selections := &mockSelectionRepo{}
	r := setupPlacementRouter(t, students, quals, selections)

	t.Run("qualified STE student", func(t *testing.T) {
		rec := performPlacementRequest(r, http.MethodPost, "/selections/confirm", map[string]string{
			"student_id":   "S-1",
			"program_code": "STE",
			"reason":       "science fair",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if len(selections.saved) != 1 || selections.saved[0].ProgramCode != domain.ProgramSTE {
			t.Fatalf("expected selection saved, got %+v", selections.saved)
		}
	})

	t.Run("academic rejection", func(t *testing.T) {
		rec := performPlacementRequest(r, http.MethodPost, "/selections/confirm", map[string]string{
			"student_id":   "S-2",
			"program_code": "STE",
		})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected status 422, got %d", rec.Code)
		}
		var resp struct {
			Reason string                  `json:"reason"`
			Unmet  []domain.UnmetCondition `json:"unmet"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Reason != service.RejectionAcademic || len(resp.Unmet) != 1 || resp.Unmet[0].Field != "exam_result" {
			t.Fatalf("unexpected rejection body: %+v", resp)
		}
	})

	t.Run("unknown program", func(t *testing.T) {
		rec := performPlacementRequest(r, http.MethodPost, "/selections/confirm", map[string]string{
			"student_id":   "S-1",
			"program_code": "ABM",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		rec := performPlacementRequest(r, http.MethodPost, "/selections/confirm", map[string]string{
			"student_id":   "S-9",
			"program_code": "REGULAR",
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", rec.Code)
		}
	})

	if len(selections.saved) != 1 {
		t.Fatalf("expected only the accepted selection persisted, got %d", len(selections.saved))
	}
}

func TestPlacementHandlerListQualifications(t *testing.T) {
	quals := &mockQualificationRepo{records: []domain.QualificationRecord{
		{ID: 1, StudentID: "S-1", Status: domain.QualificationPending, UpdatedAt: time.Unix(100, 0)},
		{ID: 2, StudentID: "S-1", Status: domain.QualificationQualified, UpdatedAt: time.Unix(200, 0)},
	}}
	r := setupPlacementRouter(t, &mockStudentRepo{}, quals, &mockSelectionRepo{})

	rec := performPlacementRequest(r, http.MethodGet, "/qualifications/ste?student_ids=S-1,,S-2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp struct {
		Qualifications map[string]domain.QualificationRecord `json:"qualifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Qualifications) != 1 || resp.Qualifications["S-1"].ID != 2 {
		t.Fatalf("unexpected qualifications: %+v", resp.Qualifications)
	}

	rec = performPlacementRequest(r, http.MethodGet, "/qualifications/ste", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without student_ids, got %d", rec.Code)
	}
}
