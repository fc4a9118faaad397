package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Materias estandar del boletin de Grado 6.
const (
	SubjectMathematics             = "mathematics"
	SubjectAralingPanlipunan       = "araling_panlipunan"
	SubjectEnglish                 = "english"
	SubjectEdukasyonSaPagpapakatao = "edukasyon_sa_pagpapakatao"
	SubjectScience                 = "science"
	SubjectEdukasyonPangkabuhayan  = "edukasyon_pangkabuhayan"
	SubjectFilipino                = "filipino"
	SubjectMAPEH                   = "mapeh"
)

// StandardSubjects conserva el orden del boletin.
var StandardSubjects = []string{
	SubjectMathematics,
	SubjectAralingPanlipunan,
	SubjectEnglish,
	SubjectEdukasyonSaPagpapakatao,
	SubjectScience,
	SubjectEdukasyonPangkabuhayan,
	SubjectFilipino,
	SubjectMAPEH,
}

// ExamResult es el resultado del examen de calificacion (DOST).
type ExamResult string

const (
	ExamUnset    ExamResult = ""
	ExamPassed   ExamResult = "passed"
	ExamFailed   ExamResult = "failed"
	ExamNotTaken ExamResult = "not_taken"
)

// ParseExamResult normaliza el valor recibido; cualquier cosa desconocida queda como unset.
func ParseExamResult(raw string) ExamResult {
	switch ExamResult(strings.ToLower(strings.TrimSpace(raw))) {
	case ExamPassed:
		return ExamPassed
	case ExamFailed:
		return ExamFailed
	case ExamNotTaken, "not taken":
		return ExamNotTaken
	default:
		return ExamUnset
	}
}

// String devuelve "unset" para el valor vacio, util en mensajes.
func (e ExamResult) String() string {
	if e == ExamUnset {
		return "unset"
	}
	return string(e)
}

// AcademicRecord son las notas del estudiante y el resultado del examen.
// Una nota nil significa materia ausente.
type AcademicRecord struct {
	Scores     map[string]*float64 `json:"scores" yaml:"scores"`
	ExamResult ExamResult          `json:"exam_result" yaml:"exam_result"`
}

func validScore(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	s := *v
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 || s > 100 {
		return 0, false
	}
	return s, true
}

// PresentScores devuelve solo las notas presentes y dentro de [0,100].
// Las fuera de rango se tratan como ausentes.
func (r AcademicRecord) PresentScores() map[string]float64 {
	out := make(map[string]float64, len(r.Scores))
	for subject, v := range r.Scores {
		if s, ok := validScore(v); ok {
			out[normalizeKey(subject)] = s
		}
	}
	return out
}

// OverallAverage se recalcula siempre desde las notas actuales, redondeado a 2 decimales.
func (r AcademicRecord) OverallAverage() float64 {
	present := r.PresentScores()
	if len(present) == 0 {
		return 0
	}
	var sum float64
	for _, s := range present {
		sum += s
	}
	return math.Round(sum/float64(len(present))*100) / 100
}

// MinScore devuelve la nota minima presente; ok=false si no hay notas.
func (r AcademicRecord) MinScore() (float64, bool) {
	present := r.PresentScores()
	if len(present) == 0 {
		return 0, false
	}
	min := math.Inf(1)
	for _, s := range present {
		if s < min {
			min = s
		}
	}
	return min, true
}

// AllSubjectsAtLeast exige al menos una nota presente.
func (r AcademicRecord) AllSubjectsAtLeast(threshold float64) bool {
	min, ok := r.MinScore()
	return ok && min >= threshold
}

// ScoresFromValues convierte notas sin tipar (JSON o YAML). Lo que no es numero queda ausente.
func ScoresFromValues(raw map[string]any) map[string]*float64 {
	out := make(map[string]*float64, len(raw))
	for subject, v := range raw {
		if s, ok := scoreValue(v); ok {
			out[subject] = Score(s)
		}
	}
	return out
}

func scoreValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Score helper para construir registros en tests y fixtures.
func Score(v float64) *float64 {
	return &v
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
