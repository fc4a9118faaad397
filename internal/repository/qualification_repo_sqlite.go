package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"school-placement/internal/domain"
)

const sqliteQualificationSchema = `
	CREATE TABLE IF NOT EXISTS qualification_list (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		program_code    TEXT NOT NULL,
		student_id      TEXT NOT NULL,
		exam_score      REAL,
		interview_score REAL,
		status          TEXT NOT NULL DEFAULT 'pending',
		remarks         TEXT,
		created_at      TIMESTAMP NOT NULL,
		updated_at      TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_qualification_student ON qualification_list (program_code, student_id);
	CREATE INDEX IF NOT EXISTS idx_qualification_updated ON qualification_list (updated_at DESC);
`

// SQLiteQualificationRepository sirve la lista de calificados desde un archivo local (uso offline / CLI).
type SQLiteQualificationRepository struct {
	db *sql.DB
}

// OpenSQLiteQualificationRepository abre (o crea) el archivo y asegura el esquema.
func OpenSQLiteQualificationRepository(ctx context.Context, path string) (*SQLiteQualificationRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite no se beneficia de multiples conexiones de escritura; con :memory: cada conexion es otra base.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, sqliteQualificationSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteQualificationRepository{db: db}, nil
}

func (r *SQLiteQualificationRepository) Close() error {
	return r.db.Close()
}

// Add inserta un registro. Solo lo usan las herramientas de administracion, nunca el motor.
func (r *SQLiteQualificationRepository) Add(ctx context.Context, programCode string, rec domain.QualificationRecord) (int64, error) {
	const query = `
		INSERT INTO qualification_list (program_code, student_id, exam_score, interview_score, status, remarks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = rec.CreatedAt
	}
	if rec.Status == "" {
		rec.Status = domain.QualificationPending
	}

	res, err := r.db.ExecContext(ctx, query,
		strings.ToUpper(programCode),
		rec.StudentID,
		nullableFloat(rec.ExamScore),
		nullableFloat(rec.InterviewScore),
		string(rec.Status),
		rec.Remarks,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteQualificationRepository) FindByStudentID(ctx context.Context, programCode, studentID string) ([]domain.QualificationRecord, error) {
	const query = `
		SELECT id, student_id, exam_score, interview_score, status, remarks, created_at, updated_at
		FROM qualification_list
		WHERE program_code = ? AND student_id = ?
		ORDER BY updated_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, strings.ToUpper(programCode), studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.QualificationRecord
	for rows.Next() {
		rec, err := scanSQLiteQualification(rows)
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

func (r *SQLiteQualificationRepository) FindLatestByStudentIDs(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	out := make(map[string]domain.QualificationRecord, len(studentIDs))
	for _, id := range studentIDs {
		records, err := r.FindByStudentID(ctx, programCode, id)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			out[id] = records[0]
		}
	}
	return out, nil
}

func scanSQLiteQualification(rows *sql.Rows) (domain.QualificationRecord, error) {
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

func nullableFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
