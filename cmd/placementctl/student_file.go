package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"school-placement/internal/domain"
)

// studentFile es el formato YAML de una foto de estudiante.
type studentFile struct {
	StudentID string `yaml:"student_id"`
	Academic  struct {
		Scores     map[string]any `yaml:"scores"`
		ExamResult string         `yaml:"exam_result"`
	} `yaml:"academic"`
	Survey domain.SurveyAnswers `yaml:"survey"`
	Flags  domain.StudentFlags  `yaml:"flags"`
}

func (f studentFile) snapshot() domain.StudentSnapshot {
	return domain.StudentSnapshot{
		StudentID: f.StudentID,
		Academic: domain.AcademicRecord{
			Scores:     domain.ScoresFromValues(f.Academic.Scores),
			ExamResult: domain.ParseExamResult(f.Academic.ExamResult),
		},
		Survey: f.Survey.ToRecord(),
		Flags:  f.Flags,
	}
}

func parseStudentFile(data []byte) (domain.StudentSnapshot, error) {
	var f studentFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return domain.StudentSnapshot{}, fmt.Errorf("parse student file: %w", err)
	}
	return f.snapshot(), nil
}

func loadStudentFile(path string) (domain.StudentSnapshot, error) {
	if path == "" {
		return domain.StudentSnapshot{}, fmt.Errorf("student file is required (--file)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.StudentSnapshot{}, err
	}
	return parseStudentFile(data)
}
