package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"school-placement/internal/domain"
)

type SelectionRepository interface {
	// Save devuelve la fila guardada; al reemplazar conserva el id y created_at existentes.
	Save(ctx context.Context, selection domain.ProgramSelection) (domain.ProgramSelection, error)
}

type PgSelectionRepository struct {
	pool *pgxpool.Pool
}

func NewPgSelectionRepository(pool *pgxpool.Pool) *PgSelectionRepository {
	return &PgSelectionRepository{pool: pool}
}

// Save guarda una eleccion por estudiante; confirmar otra vez reemplaza la anterior.
func (r *PgSelectionRepository) Save(ctx context.Context, selection domain.ProgramSelection) (domain.ProgramSelection, error) {
	const query = `
		INSERT INTO program_selection (id, student_id, selected_program_code, program_description, selection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (student_id)
		DO UPDATE SET
			selected_program_code = EXCLUDED.selected_program_code,
			program_description = EXCLUDED.program_description,
			selection_reason = EXCLUDED.selection_reason,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`

	var reason interface{}
	if selection.SelectionReason != "" {
		reason = selection.SelectionReason
	}

	err := r.pool.QueryRow(ctx, query,
		selection.ID,
		selection.StudentID,
		selection.ProgramCode,
		selection.ProgramDescription,
		reason,
		selection.CreatedAt,
	).Scan(&selection.ID, &selection.CreatedAt)
	if err != nil {
		return domain.ProgramSelection{}, err
	}
	return selection, nil
}
