package main

import (
	"context"
	"strings"
	"time"

	"school-placement/internal/domain"
)

// --- REPOSITORIOS EN MEMORIA ---

type memoryQualificationRepo struct {
	records map[string][]domain.QualificationRecord
}

func newMemoryQualificationRepo() *memoryQualificationRepo {
	return &memoryQualificationRepo{records: make(map[string][]domain.QualificationRecord)}
}

func (m *memoryQualificationRepo) key(programCode, studentID string) string {
	return strings.ToUpper(programCode) + "|" + studentID
}

func (m *memoryQualificationRepo) add(programCode string, rec domain.QualificationRecord) {
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = time.Now().UTC()
	}
	k := m.key(programCode, rec.StudentID)
	rec.ID = int64(len(m.records[k]) + 1)
	m.records[k] = append(m.records[k], rec)
}

func (m *memoryQualificationRepo) FindByStudentID(ctx context.Context, programCode, studentID string) ([]domain.QualificationRecord, error) {
	return append([]domain.QualificationRecord(nil), m.records[m.key(programCode, studentID)]...), nil
}

func (m *memoryQualificationRepo) FindLatestByStudentIDs(ctx context.Context, programCode string, studentIDs []string) (map[string]domain.QualificationRecord, error) {
	out := make(map[string]domain.QualificationRecord)
	for _, id := range studentIDs {
		for _, r := range m.records[m.key(programCode, id)] {
			if cur, ok := out[id]; !ok || r.UpdatedAt.After(cur.UpdatedAt) {
				out[id] = r
			}
		}
	}
	return out, nil
}

type memorySelectionRepo struct {
	saved map[string]domain.ProgramSelection
}

func newMemorySelectionRepo() *memorySelectionRepo {
	return &memorySelectionRepo{saved: make(map[string]domain.ProgramSelection)}
}

func (m *memorySelectionRepo) Save(ctx context.Context, selection domain.ProgramSelection) (domain.ProgramSelection, error) {
	if prev, ok := m.saved[selection.StudentID]; ok {
		selection.ID = prev.ID
		selection.CreatedAt = prev.CreatedAt
	}
	m.saved[selection.StudentID] = selection
	return selection, nil
}
