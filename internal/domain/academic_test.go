package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestAcademicRecordOverallAverage(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]*float64
		want   float64
	}{
		{name: "empty", scores: nil, want: 0},
		{name: "rounds to two decimals", scores: map[string]*float64{"a": Score(90), "b": Score(91), "c": Score(94)}, want: 91.67},
		{name: "missing subjects are skipped", scores: map[string]*float64{"a": Score(80), "b": nil}, want: 80},
		{name: "out of range is absent", scores: map[string]*float64{"a": Score(90), "b": Score(120), "c": Score(-1)}, want: 90},
		{name: "nan is absent", scores: map[string]*float64{"a": Score(88), "b": Score(math.NaN())}, want: 88},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := AcademicRecord{Scores: tt.scores}
			if got := rec.OverallAverage(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAcademicRecordAllSubjectsAtLeast(t *testing.T) {
	if (AcademicRecord{}).AllSubjectsAtLeast(85) {
		t.Fatalf("expected empty record to fail the minimum check")
	}
	rec := AcademicRecord{Scores: map[string]*float64{"Math": Score(85), "English": Score(99)}}
	if !rec.AllSubjectsAtLeast(85) {
		t.Fatalf("expected 85 to satisfy the threshold")
	}
	if rec.AllSubjectsAtLeast(85.01) {
		t.Fatalf("expected 85 to fail a higher threshold")
	}
	if _, ok := rec.PresentScores()["math"]; !ok {
		t.Fatalf("expected subject keys normalized")
	}
}

func TestParseExamResult(t *testing.T) {
	tests := map[string]ExamResult{
		"passed":    ExamPassed,
		" Passed ":  ExamPassed,
		"FAILED":    ExamFailed,
		"not taken": ExamNotTaken,
		"not_taken": ExamNotTaken,
		"":          ExamUnset,
		"maybe":     ExamUnset,
	}
	for raw, want := range tests {
		if got := ParseExamResult(raw); got != want {
			t.Fatalf("ParseExamResult(%q) = %q, want %q", raw, got, want)
		}
	}
	if ExamUnset.String() != "unset" {
		t.Fatalf("expected unset label")
	}
}

func TestScoresFromValues(t *testing.T) {
	scores := ScoresFromValues(map[string]any{
		"mathematics": 91.5,
		"english":     88,
		"science":     json.Number("97"),
		"filipino":    " 90 ",
		"mapeh":       "n/a",
		"araling":     nil,
		"epp":         true,
		"esp":         map[string]any{"q1": 90},
	})

	want := map[string]float64{"mathematics": 91.5, "english": 88, "science": 97, "filipino": 90}
	if len(scores) != len(want) {
		t.Fatalf("expected %d scores, got %v", len(want), scores)
	}
	for subject, v := range want {
		if got := scores[subject]; got == nil || *got != v {
			t.Fatalf("expected %s=%v, got %v", subject, v, got)
		}
	}
}
