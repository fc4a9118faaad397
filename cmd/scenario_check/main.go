package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"school-placement/internal/config"
	"school-placement/internal/domain"
	"school-placement/internal/service"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	catalog, err := config.LoadCatalog(os.Getenv("PROGRAM_CATALOG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	scenarios := referenceScenarios()
	failed, err := runAll(ctx, catalog, scenarios, zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("==== Resumen ====")
	fmt.Printf("Escenarios: %d | OK: %d | Fallidos: %d\n", len(scenarios), len(scenarios)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// runAll corre los escenarios contra repositorios en memoria y devuelve cuantos fallaron.
func runAll(ctx context.Context, catalog domain.Catalog, scenarios []Scenario, logger *zap.Logger) (int, error) {
	quals := newMemoryQualificationRepo()
	for _, sc := range scenarios {
		for _, rec := range sc.Qualifications {
			quals.add(domain.ProgramSTE, rec)
		}
	}
	selections := newMemorySelectionRepo()

	gate := service.NewQualificationGate(quals, logger)
	engine, err := service.NewRecommendationEngine(catalog, gate, logger)
	if err != nil {
		return 0, err
	}
	confirmations := service.NewConfirmationService(catalog, engine.Evaluator(), gate, selections, logger)

	failed := 0
	for _, sc := range scenarios {
		fmt.Printf("%s[Escenario]%s %s\n", colorCyan, colorReset, sc.Name)

		out, err := runScenario(ctx, engine, confirmations, sc)
		if err != nil {
			return failed, fmt.Errorf("%s: %w", sc.Name, err)
		}
		for _, r := range out.Summary.Recommendations {
			fmt.Printf("  #%d %-8s %6.2f  %s\n", r.Rank, r.ProgramCode, r.OverallScore, r.RecommendationLevel)
		}

		diffs := judgeOutcome(sc, out)
		if len(diffs) == 0 {
			fmt.Printf("%s  OK%s\n\n", colorGreen, colorReset)
			continue
		}
		failed++
		for _, d := range diffs {
			fmt.Printf("%s  FALLO%s %s\n", colorRed, colorReset, d)
		}
		fmt.Println()
	}
	return failed, nil
}
