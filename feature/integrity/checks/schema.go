package checks

import (
	"fmt"

	"library-sync/core/database"

	"gorm.io/gorm"
)

// SchemaReport strictly types the result of a schema check.
type SchemaReport struct {
	Matched bool                   `json:"matched"`
	Tables  map[string]TableReport `json:"tables"`
	Errors  []string               `json:"errors"`
}

type TableReport struct {
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
	Status         string   `json:"status"` // "ok", "error"
}

// CheckSchema verifies the database schema using the GORM models as the source of truth.
func CheckSchema(db *gorm.DB, models ...any) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &SchemaReport{
		Matched: true,
		Tables:  make(map[string]TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to parse model %T: %v", model, err))
			report.Matched = false
			continue
		}
		table := stmt.Schema.Table

		tblReport := TableReport{
			Exists:         db.Migrator().HasTable(table),
			MissingColumns: []string{},
			Status:         "ok",
		}

		missing, err := database.MissingColumns(db, table, stmt.Schema.DBNames)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		if len(missing) > 0 {
			tblReport.MissingColumns = missing
		}
		if !tblReport.Exists || len(missing) > 0 {
			tblReport.Status = "error"
			report.Matched = false
		}
		report.Tables[table] = tblReport
	}

	return report, nil
}
