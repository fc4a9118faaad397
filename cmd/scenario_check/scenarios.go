package main

import (
	"time"

	"school-placement/internal/domain"
	"school-placement/internal/service"
)

// Scenario es un caso de referencia con el resultado esperado del motor y de la confirmacion.
type Scenario struct {
	Name           string
	Snapshot       domain.StudentSnapshot
	Qualifications []domain.QualificationRecord

	ExpectedOrder   []string
	ExpectedBlocked []string

	ConfirmProgram  string
	ExpectConfirmed bool
	ExpectReason    string
}

func honorsGrades(exam domain.ExamResult) domain.AcademicRecord {
	grades := []float64{86, 96, 96, 96, 96, 96, 97, 97}
	rec := domain.AcademicRecord{Scores: map[string]*float64{}, ExamResult: exam}
	for i, s := range domain.StandardSubjects {
		rec.Scores[s] = domain.Score(grades[i])
	}
	return rec
}

func flatGrades(score float64) domain.AcademicRecord {
	rec := domain.AcademicRecord{Scores: map[string]*float64{}}
	for _, s := range domain.StandardSubjects {
		rec.Scores[s] = domain.Score(score)
	}
	return rec
}

func scienceSurvey() domain.SurveyRecord {
	return domain.NewSurveyRecord(
		[]string{"science", "math", "english"},
		map[string]bool{domain.TraitActive: true, domain.TraitStudious: true, domain.TraitSmart: true},
	)
}

func referenceScenarios() []Scenario {
	listed := time.Date(2025, 5, 15, 9, 0, 0, 0, time.UTC)

	return []Scenario{
		{
			Name: "Honor con examen aprobado y en la lista",
			Snapshot: domain.StudentSnapshot{
				StudentID: "ref-honors-passed",
				Academic:  honorsGrades(domain.ExamPassed),
				Survey:    scienceSurvey(),
			},
			Qualifications: []domain.QualificationRecord{
				{StudentID: "ref-honors-passed", Status: domain.QualificationPending, UpdatedAt: listed},
				{StudentID: "ref-honors-passed", Status: domain.QualificationQualified, UpdatedAt: listed.Add(72 * time.Hour)},
			},
			ExpectedOrder:   []string{domain.ProgramSTE, domain.ProgramSPFL, domain.ProgramSPTVE},
			ConfirmProgram:  domain.ProgramSTE,
			ExpectConfirmed: true,
		},
		{
			Name: "Honor con examen reprobado",
			Snapshot: domain.StudentSnapshot{
				StudentID: "ref-honors-failed",
				Academic:  honorsGrades(domain.ExamFailed),
				Survey:    scienceSurvey(),
			},
			ExpectedOrder:   []string{domain.ProgramSPFL, domain.ProgramSPTVE, domain.ProgramSTE},
			ExpectedBlocked: []string{domain.ProgramSTE},
			ConfirmProgram:  domain.ProgramSTE,
			ExpectReason:    service.RejectionAcademic,
		},
		{
			Name: "Honor aprobado pero fuera de la lista",
			Snapshot: domain.StudentSnapshot{
				StudentID: "ref-not-listed",
				Academic:  honorsGrades(domain.ExamPassed),
				Survey:    scienceSurvey(),
			},
			ExpectedOrder:   []string{domain.ProgramSTE, domain.ProgramSPFL, domain.ProgramSPTVE},
			ExpectedBlocked: []string{domain.ProgramSTE},
			ConfirmProgram:  domain.ProgramSTE,
			ExpectReason:    service.RejectionQualification,
		},
		{
			Name: "Estudiante con discapacidad",
			Snapshot: domain.StudentSnapshot{
				StudentID: "ref-disability",
				Academic:  flatGrades(70),
				Flags:     domain.StudentFlags{HasDisability: true},
			},
			ExpectedOrder:   []string{domain.ProgramSNEDL, domain.ProgramRegular},
			ConfirmProgram:  domain.ProgramSNEDL,
			ExpectConfirmed: true,
		},
		{
			Name: "Estudiante que trabaja",
			Snapshot: domain.StudentSnapshot{
				StudentID: "ref-working",
				Academic:  flatGrades(80),
				Flags:     domain.StudentFlags{IsWorkingStudent: true},
			},
			ExpectedOrder:   []string{domain.ProgramOHSP, domain.ProgramRegular},
			ConfirmProgram:  domain.ProgramRegular,
			ExpectConfirmed: true,
		},
	}
}
