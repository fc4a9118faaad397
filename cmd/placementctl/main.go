package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogPath      string // Ruta al catálogo YAML (vacío = catálogo por defecto)
	qualificationsDB string // Archivo SQLite con la lista de calificados
	verbose          bool

	logger = zap.NewNop()
)

// rootCmd es el comando base del CLI.
var rootCmd = &cobra.Command{
	Use:           "placementctl",
	Short:         "Program placement recommendations from student snapshot files",
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", os.Getenv("PROGRAM_CATALOG_PATH"), "Path to program catalog YAML")
	rootCmd.PersistentFlags().StringVar(&qualificationsDB, "qualifications-db", "", "Path to SQLite qualification list")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable development logging")
}

func main() {
	_ = godotenv.Load()
	defer func() { _ = logger.Sync() }()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
