package domain

import "time"

// QualificationStatus es el estado en la lista de calificados (p.ej. STE).
type QualificationStatus string

const (
	QualificationPending      QualificationStatus = "pending"
	QualificationQualified    QualificationStatus = "qualified"
	QualificationNotQualified QualificationStatus = "not_qualified"
	QualificationWaitlisted   QualificationStatus = "waitlisted"
)

// QualificationRecord pertenece a otro subsistema; el motor solo lo lee.
type QualificationRecord struct {
	ID             int64               `json:"id"`
	StudentID      string              `json:"student_id"`
	ExamScore      *float64            `json:"exam_score,omitempty"`
	InterviewScore *float64            `json:"interview_score,omitempty"`
	Status         QualificationStatus `json:"status"`
	Remarks        string              `json:"remarks,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// QualificationCheck es el resultado de verificar la lista para un programa.
type QualificationCheck struct {
	StudentID   string               `json:"student_id"`
	ProgramCode string               `json:"program_code"`
	Qualified   bool                 `json:"qualified"`
	Found       bool                 `json:"found"`
	Record      *QualificationRecord `json:"record,omitempty"`
	// Duplicates cuenta registros extra para el mismo estudiante (sombreados por el mas reciente).
	Duplicates int `json:"duplicates,omitempty"`
}
