package service

import (
	"context"
	"time"

	"school-placement/internal/domain"
)

// honorsAcademic: promedio 95, minimo 86.
func honorsAcademic(exam domain.ExamResult) domain.AcademicRecord {
	return domain.AcademicRecord{
		Scores: map[string]*float64{
			domain.SubjectMathematics:             domain.Score(86),
			domain.SubjectAralingPanlipunan:       domain.Score(96),
			domain.SubjectEnglish:                 domain.Score(96),
			domain.SubjectEdukasyonSaPagpapakatao: domain.Score(96),
			domain.SubjectScience:                 domain.Score(96),
			domain.SubjectEdukasyonPangkabuhayan:  domain.Score(96),
			domain.SubjectFilipino:                domain.Score(97),
			domain.SubjectMAPEH:                   domain.Score(97),
		},
		ExamResult: exam,
	}
}

// uniformAcademic pone la misma nota en todas las materias estandar.
func uniformAcademic(score float64, exam domain.ExamResult) domain.AcademicRecord {
	rec := domain.AcademicRecord{Scores: map[string]*float64{}, ExamResult: exam}
	for _, s := range domain.StandardSubjects {
		rec.Scores[s] = domain.Score(score)
	}
	return rec
}

func steSurvey() domain.SurveyRecord {
	return domain.NewSurveyRecord(
		[]string{"science", "math", "english"},
		map[string]bool{domain.TraitActive: true, domain.TraitStudious: true, domain.TraitSmart: true},
	)
}

func findResult(results []domain.RecommendationResult, code string) (domain.RecommendationResult, bool) {
	for _, r := range results {
		if r.ProgramCode == code {
			return r, true
		}
	}
	return domain.RecommendationResult{}, false
}

func hasCheck(r domain.RecommendationResult, checkType string) bool {
	for _, c := range r.SpecialChecks {
		if c.Type == checkType {
			return true
		}
	}
	return false
}

type mockQualificationRepo struct {
	records     []domain.QualificationRecord
	latest      map[string]domain.QualificationRecord
	err         error
	calls       int
	lastProgram string
	lastStudent string
}

func (m *mockQualificationRepo) FindByStudentID(_ context.Context, programCode, studentID string) ([]domain.QualificationRecord, error) {
	m.calls++
	m.lastProgram = programCode
	m.lastStudent = studentID
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

func (m *mockQualificationRepo) FindLatestByStudentIDs(_ context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	m.calls++
	m.lastProgram = programCode
	if m.err != nil {
		return nil, m.err
	}
	return m.latest, nil
}

func qualificationRecord(id int64, studentID string, status domain.QualificationStatus, updatedAt time.Time) domain.QualificationRecord {
	return domain.QualificationRecord{
		ID:        id,
		StudentID: studentID,
		Status:    status,
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}
