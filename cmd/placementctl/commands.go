package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"school-placement/internal/config"
	"school-placement/internal/domain"
	"school-placement/internal/repository"
	"school-placement/internal/service"
)

var (
	studentPath   string
	programCode   string
	selectReason  string
	qualStudentID string
	qualStatus    string
	qualExam      float64
	qualInterview float64
	qualRemarks   string
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List the program catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := config.LoadCatalog(catalogPath)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), catalog)
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank programs for a student snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		snapshot, err := loadStudentFile(studentPath)
		if err != nil {
			return err
		}
		engine, _, closeFn, err := buildEngine(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		summary, err := engine.Recommend(ctx, snapshot)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), summary)
	},
}

var confirmCmd = &cobra.Command{
	Use:   "confirm",
	Short: "Validate a program choice for a student snapshot file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		snapshot, err := loadStudentFile(studentPath)
		if err != nil {
			return err
		}
		engine, gate, closeFn, err := buildEngine(ctx)
		if err != nil {
			return err
		}
		defer closeFn()

		confirmations := service.NewConfirmationService(engine.Catalog(), engine.Evaluator(), gate, nil, logger)
		selection, err := confirmations.Confirm(ctx, service.ConfirmationRequest{
			StudentID:   snapshot.StudentID,
			ProgramCode: programCode,
			Reason:      selectReason,
			Academic:    snapshot.Academic,
			Flags:       snapshot.Flags,
		})
		var rejected *service.ConfirmationRejectedError
		if errors.As(err, &rejected) {
			_ = writeJSON(cmd.OutOrStdout(), map[string]any{
				"status": "rejected",
				"reason": rejected.Reason,
				"error":  rejected.Message,
				"unmet":  rejected.Unmet,
			})
			return err
		}
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), map[string]any{"status": "confirmed", "selection": selection})
	},
}

var qualificationsCmd = &cobra.Command{
	Use:   "qualifications",
	Short: "Manage the offline qualification list",
}

var qualificationsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a qualification record to the SQLite list",
	RunE: func(cmd *cobra.Command, args []string) error {
		if qualificationsDB == "" {
			return fmt.Errorf("--qualifications-db is required")
		}
		if qualStudentID == "" {
			return fmt.Errorf("--student-id is required")
		}
		status := domain.QualificationStatus(qualStatus)
		switch status {
		case domain.QualificationPending, domain.QualificationQualified,
			domain.QualificationNotQualified, domain.QualificationWaitlisted:
		default:
			return fmt.Errorf("invalid status %q", qualStatus)
		}

		repo, err := repository.OpenSQLiteQualificationRepository(cmd.Context(), qualificationsDB)
		if err != nil {
			return err
		}
		defer repo.Close()

		rec := domain.QualificationRecord{
			StudentID: qualStudentID,
			Status:    status,
			Remarks:   qualRemarks,
			UpdatedAt: time.Now().UTC(),
		}
		if cmd.Flags().Changed("exam-score") {
			rec.ExamScore = &qualExam
		}
		if cmd.Flags().Changed("interview-score") {
			rec.InterviewScore = &qualInterview
		}
		id, err := repo.Add(cmd.Context(), programCode, rec)
		if err != nil {
			return err
		}
		rec.ID = id
		return writeJSON(cmd.OutOrStdout(), rec)
	},
}

func init() {
	recommendCmd.Flags().StringVarP(&studentPath, "file", "f", "", "Path to student snapshot YAML")

	confirmCmd.Flags().StringVarP(&studentPath, "file", "f", "", "Path to student snapshot YAML")
	confirmCmd.Flags().StringVar(&programCode, "program", "", "Program code to confirm (e.g., STE)")
	confirmCmd.Flags().StringVar(&selectReason, "reason", "", "Why the student chose this program")
	_ = confirmCmd.MarkFlagRequired("program")

	qualificationsAddCmd.Flags().StringVar(&programCode, "program", domain.ProgramSTE, "Program code of the list")
	qualificationsAddCmd.Flags().StringVar(&qualStudentID, "student-id", "", "Student identifier (LRN)")
	qualificationsAddCmd.Flags().StringVar(&qualStatus, "status", string(domain.QualificationPending), "pending, qualified, not_qualified or waitlisted")
	qualificationsAddCmd.Flags().Float64Var(&qualExam, "exam-score", 0, "Qualification exam score (0-100)")
	qualificationsAddCmd.Flags().Float64Var(&qualInterview, "interview-score", 0, "Interview score (0-100)")
	qualificationsAddCmd.Flags().StringVar(&qualRemarks, "remarks", "", "Free-text remarks")
	qualificationsCmd.AddCommand(qualificationsAddCmd)

	rootCmd.AddCommand(programsCmd, recommendCmd, confirmCmd, qualificationsCmd)
}

// buildEngine arma el motor; sin --qualifications-db la verificación de listas queda desactivada.
func buildEngine(ctx context.Context) (*service.RecommendationEngine, *service.QualificationGate, func(), error) {
	catalog, err := config.LoadCatalog(catalogPath)
	if err != nil {
		return nil, nil, nil, err
	}

	closeFn := func() {}
	var gate *service.QualificationGate
	if qualificationsDB != "" {
		repo, err := repository.OpenSQLiteQualificationRepository(ctx, qualificationsDB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn = func() { _ = repo.Close() }
		gate = service.NewQualificationGate(repo, logger)
	}

	engine, err := service.NewRecommendationEngine(catalog, gate, logger)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return engine, gate, closeFn, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
