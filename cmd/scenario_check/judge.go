package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"school-placement/internal/domain"
	"school-placement/internal/service"
)

// outcome es lo que produjo el motor para un escenario.
type outcome struct {
	Summary   domain.RecommendationSummary
	Selection *domain.ProgramSelection
	Rejection *service.ConfirmationRejectedError
}

func runScenario(ctx context.Context, engine *service.RecommendationEngine, confirmations *service.ConfirmationService, sc Scenario) (outcome, error) {
	var out outcome

	summary, err := engine.Recommend(ctx, sc.Snapshot)
	if err != nil {
		return out, fmt.Errorf("recommend: %w", err)
	}
	out.Summary = summary

	if sc.ConfirmProgram == "" {
		return out, nil
	}
	selection, err := confirmations.Confirm(ctx, service.ConfirmationRequest{
		StudentID:   sc.Snapshot.StudentID,
		ProgramCode: sc.ConfirmProgram,
		Academic:    sc.Snapshot.Academic,
		Flags:       sc.Snapshot.Flags,
	})
	var rejected *service.ConfirmationRejectedError
	switch {
	case err == nil:
		out.Selection = &selection
	case errors.As(err, &rejected):
		out.Rejection = rejected
	default:
		return out, fmt.Errorf("confirm: %w", err)
	}
	return out, nil
}

// judgeOutcome compara contra lo esperado y devuelve las diferencias legibles.
func judgeOutcome(sc Scenario, out outcome) []string {
	var diffs []string

	got := make([]string, 0, len(out.Summary.AllRecommendations))
	for _, r := range out.Summary.AllRecommendations {
		got = append(got, r.ProgramCode)
	}
	if strings.Join(got, ",") != strings.Join(sc.ExpectedOrder, ",") {
		diffs = append(diffs, fmt.Sprintf("orden esperado [%s], obtenido [%s]",
			strings.Join(sc.ExpectedOrder, ", "), strings.Join(got, ", ")))
	}

	blocked := map[string]bool{}
	for _, r := range out.Summary.AllRecommendations {
		if r.Blocked() {
			blocked[r.ProgramCode] = true
		}
	}
	for _, code := range sc.ExpectedBlocked {
		if !blocked[code] {
			diffs = append(diffs, fmt.Sprintf("%s deberia estar bloqueado", code))
		}
		delete(blocked, code)
	}
	unexpected := make([]string, 0, len(blocked))
	for code := range blocked {
		unexpected = append(unexpected, code)
	}
	sort.Strings(unexpected)
	for _, code := range unexpected {
		diffs = append(diffs, fmt.Sprintf("%s bloqueado sin esperarlo", code))
	}

	if sc.ConfirmProgram == "" {
		return diffs
	}
	switch {
	case sc.ExpectConfirmed && out.Selection == nil:
		reason := "sin rechazo"
		if out.Rejection != nil {
			reason = out.Rejection.Error()
		}
		diffs = append(diffs, fmt.Sprintf("confirmacion de %s rechazada: %s", sc.ConfirmProgram, reason))
	case !sc.ExpectConfirmed && out.Selection != nil:
		diffs = append(diffs, fmt.Sprintf("confirmacion de %s aceptada, se esperaba rechazo", sc.ConfirmProgram))
	case !sc.ExpectConfirmed && out.Rejection != nil && sc.ExpectReason != "" && out.Rejection.Reason != sc.ExpectReason:
		diffs = append(diffs, fmt.Sprintf("motivo de rechazo %q, se esperaba %q", out.Rejection.Reason, sc.ExpectReason))
	}
	return diffs
}
