package domain

import "time"

// ProgramSelection es la eleccion confirmada de un estudiante.
type ProgramSelection struct {
	ID                 string    `json:"id"`
	StudentID          string    `json:"student_id"`
	ProgramCode        string    `json:"program_code"`
	ProgramDescription string    `json:"program_description"`
	SelectionReason    string    `json:"selection_reason,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// UnmetCondition describe una sub-condicion incumplida con su valor actual y el requerido.
type UnmetCondition struct {
	Field    string `json:"field"`
	Current  string `json:"current"`
	Required string `json:"required"`
}
