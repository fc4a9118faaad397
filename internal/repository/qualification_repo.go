package repository

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"school-placement/internal/domain"
)

// QualificationRepository es la unica consulta que el motor necesita de la lista de calificados.
// Es de solo lectura: los registros los administra otro subsistema.
type QualificationRepository interface {
	// FindByStudentID devuelve los registros del estudiante, el mas reciente primero.
	FindByStudentID(ctx context.Context, programCode, studentID string) ([]domain.QualificationRecord, error)
	// FindLatestByStudentIDs devuelve el registro mas reciente por estudiante.
	FindLatestByStudentIDs(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error)
}

type PgQualificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgQualificationRepository(pool *pgxpool.Pool) *PgQualificationRepository {
	return &PgQualificationRepository{pool: pool}
}

func (r *PgQualificationRepository) FindByStudentID(ctx context.Context, programCode, studentID string) ([]domain.QualificationRecord, error) {
	const query = `
		SELECT id, student_id, exam_score, interview_score, status, remarks, created_at, updated_at
		FROM qualification_list
		WHERE program_code = $1 AND student_id = $2
		ORDER BY updated_at DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, programCode, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.QualificationRecord
	for rows.Next() {
		rec, err := scanQualification(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PgQualificationRepository) FindLatestByStudentIDs(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	const query = `
		SELECT DISTINCT ON (student_id)
			id, student_id, exam_score, interview_score, status, remarks, created_at, updated_at
		FROM qualification_list
		WHERE program_code = $1 AND student_id = ANY($2)
		ORDER BY student_id, updated_at DESC, id DESC
	`

	out := make(map[string]domain.QualificationRecord, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, query, programCode, studentIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanQualification(rows)
		if err != nil {
			return nil, err
		}
		out[rec.StudentID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanQualification(rows pgx.Rows) (domain.QualificationRecord, error) {
	var (
		rec       domain.QualificationRecord
		exam      sql.NullFloat64
		interview sql.NullFloat64
		status    string
		remarks   sql.NullString
	)
	if err := rows.Scan(
		&rec.ID,
		&rec.StudentID,
		&exam,
		&interview,
		&status,
		&remarks,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return domain.QualificationRecord{}, err
	}
	if exam.Valid {
		v := exam.Float64
		rec.ExamScore = &v
	}
	if interview.Valid {
		v := interview.Float64
		rec.InterviewScore = &v
	}
	rec.Status = domain.QualificationStatus(status)
	rec.Remarks = remarks.String
	return rec, nil
}
