package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"school-placement/internal/domain"
)

// StudentRepository lee la foto autoritativa del estudiante (notas, encuesta y perfil base).
type StudentRepository interface {
	GetSnapshot(ctx context.Context, studentID string) (domain.StudentSnapshot, error)
}

type PgStudentRepository struct {
	pool *pgxpool.Pool
}

func NewPgStudentRepository(pool *pgxpool.Pool) *PgStudentRepository {
	return &PgStudentRepository{pool: pool}
}

// GetSnapshot devuelve pgx.ErrNoRows si el estudiante no existe. Las secciones faltantes quedan vacias.
func (r *PgStudentRepository) GetSnapshot(ctx context.Context, studentID string) (domain.StudentSnapshot, error) {
	const query = `
		SELECT s.id,
			a.mathematics, a.araling_panlipunan, a.english, a.edukasyon_sa_pagpapakatao,
			a.science, a.edukasyon_pangkabuhayan, a.filipino, a.mapeh, a.exam_result,
			sv.interested_science, sv.interested_math, sv.interested_english, sv.interested_technology,
			sv.interested_arts, sv.interested_foreign_language, sv.interested_tourism, sv.interested_crafts,
			sv.interested_program,
			sv.is_active, sv.is_studious, sv.is_smart, sv.is_creative, sv.is_artistic, sv.potential_genius,
			sd.has_disability, sd.is_working_student
		FROM students s
		LEFT JOIN academic_data a ON a.student_id = s.id
		LEFT JOIN survey_data sv ON sv.student_id = s.id
		LEFT JOIN student_data sd ON sd.student_id = s.id
		WHERE s.id = $1
	`

	var (
		id                                                     string
		math, ap, eng, esp, sci, epp, fil, mapeh               *float64
		examResult, interestedProgram                          *string
		iSci, iMath, iEng, iTech, iArts, iLang, iTour, iCrafts *bool
		isActive, isStudious, isSmart, isCreative, isArtistic  *bool
		potentialGenius, hasDisability, isWorking              *bool
	)
	err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&id,
		&math, &ap, &eng, &esp, &sci, &epp, &fil, &mapeh, &examResult,
		&iSci, &iMath, &iEng, &iTech, &iArts, &iLang, &iTour, &iCrafts,
		&interestedProgram,
		&isActive, &isStudious, &isSmart, &isCreative, &isArtistic, &potentialGenius,
		&hasDisability, &isWorking,
	)
	if err != nil {
		return domain.StudentSnapshot{}, err
	}

	academic := domain.AcademicRecord{
		Scores: map[string]*float64{
			domain.SubjectMathematics:             math,
			domain.SubjectAralingPanlipunan:       ap,
			domain.SubjectEnglish:                 eng,
			domain.SubjectEdukasyonSaPagpapakatao: esp,
			domain.SubjectScience:                 sci,
			domain.SubjectEdukasyonPangkabuhayan:  epp,
			domain.SubjectFilipino:                fil,
			domain.SubjectMAPEH:                   mapeh,
		},
		ExamResult: domain.ParseExamResult(deref(examResult)),
	}

	answers := domain.SurveyAnswers{
		InterestedScience:         iSci,
		InterestedMath:            iMath,
		InterestedEnglish:         iEng,
		InterestedTechnology:      iTech,
		InterestedArts:            iArts,
		InterestedForeignLanguage: iLang,
		InterestedTourism:         iTour,
		InterestedCrafts:          iCrafts,
		InterestedProgram:         deref(interestedProgram),
		IsActive:                  isActive,
		IsStudious:                isStudious,
		IsSmart:                   isSmart,
		IsCreative:                isCreative,
		IsArtistic:                isArtistic,
		PotentialGenius:           potentialGenius,
	}

	return domain.StudentSnapshot{
		StudentID: id,
		Academic:  academic,
		Survey:    answers.ToRecord(),
		Flags: domain.StudentFlags{
			HasDisability:    hasDisability != nil && *hasDisability,
			IsWorkingStudent: isWorking != nil && *isWorking,
		},
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
