package cmd

import (
	"context"
	"fmt"
	"os"
	"path"

	"library-sync/core/config"
	"library-sync/core/database"
	"library-sync/core/logger"
	"library-sync/core/storage"
	"library-sync/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

type integrityChecks struct {
	structure bool
	catalog   bool
	schema    bool
}

var allChecks = integrityChecks{structure: true, catalog: true, schema: true}

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks that the storage bucket holds the catalog snapshot and the sync folders, and that the database schema matches the sync models.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runIntegrityChecks(cmd.Context(), allChecks, false)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix bucket folder structure",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), integrityChecks{structure: true}, fixFlag)
	},
}

// catalogCmd represents the integrity catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Check the catalog snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), integrityChecks{catalog: true}, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and migrate the database schema",
	Run: func(cmd *cobra.Command, args []string) {
		runIntegrityChecks(cmd.Context(), integrityChecks{schema: true}, fixFlag)
	},
}

func init() {
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	schemaCmd.Flags().BoolVar(&fixFlag, "fix", false, "Migrate missing tables and columns")

	integrityCmd.AddCommand(structureCmd, catalogCmd, schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}

// integrityConfig derives what the checks expect from the service configuration.
func integrityConfig(cfg *config.Config) integrity.Config {
	prefixes := []string{cfg.Sync.ExportPrefix, cfg.Sync.ReportPrefix}
	if dir := path.Dir(cfg.Catalog.SnapshotObject); dir != "." && dir != "/" {
		prefixes = append([]string{dir}, prefixes...)
	}
	return integrity.Config{
		Bucket:        cfg.Storage.Bucket,
		CatalogObject: cfg.Catalog.SnapshotObject,
		Prefixes:      prefixes,
		Models:        syncModels(),
	}
}

func runIntegrityChecks(ctx context.Context, run integrityChecks, fix bool) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	// The schema check is skipped without a database
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := integrity.NewService(store, db, logg, integrityConfig(cfg))

	if run.structure {
		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			logg.Fatal("Structure check failed", zap.Error(err))
		}

		if len(missing) == 0 {
			logg.Info("Structure is intact.")
		} else {
			logg.Warn("Missing folders detected", zap.Strings("missing", missing))
			if fix {
				logg.Info("Fixing missing folders...")
				if err := svc.FixStructure(ctx, missing); err != nil {
					logg.Fatal("Failed to fix structure", zap.Error(err))
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if run.catalog {
		logg.Info("Checking catalog snapshot...", zap.String("object", cfg.Catalog.SnapshotObject))
		report, err := svc.CheckCatalog(ctx)
		if err != nil {
			logg.Fatal("Catalog check failed", zap.Error(err))
		}

		if report.Present && len(report.Errors) == 0 {
			logg.Info("Catalog snapshot is readable.",
				zap.Int("entries", report.Entries),
				zap.Int("invalid", report.Invalid))
		} else {
			for _, e := range report.Errors {
				logg.Warn("Catalog problem", zap.String("error", e))
			}
		}
	}

	if run.schema {
		if db == nil {
			logg.Error("Schema check skipped: no database connection")
			return
		}
		logg.Info("Checking database schema...")
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			return
		}
		if report.Matched {
			logg.Info("Database schema matches the sync models.")
			return
		}

		logg.Warn("Schema mismatches found")
		for table, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if !tbl.Exists {
				logg.Warn("Missing Table", zap.String("table", table))
			} else if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}

		if fix {
			logg.Info("Migrating schema...")
			if err := svc.FixSchema(); err != nil {
				logg.Fatal("Failed to migrate schema", zap.Error(err))
			}
			logg.Info("Schema migrated successfully.")
		} else {
			logg.Info("Run 'integrity schema --fix' to migrate.")
		}
	}
}
