package database

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables for models.
func Migrate(db *gorm.DB, models ...any) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// GetTableColumns returns the lower-cased column names of a table.
// A missing table yields an empty list.
func GetTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	if !db.Migrator().HasTable(tableName) {
		return nil, nil
	}
	types, err := db.Migrator().ColumnTypes(tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	columns := make([]string, 0, len(types))
	for _, ct := range types {
		columns = append(columns, strings.ToLower(ct.Name()))
	}
	return columns, nil
}

// MissingColumns lists the expected columns a table lacks. It is used at
// startup to report drift when an operator manages the schema by hand.
func MissingColumns(db *gorm.DB, tableName string, expected []string) ([]string, error) {
	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	var missing []string
	for _, e := range expected {
		if _, ok := present[strings.ToLower(e)]; !ok {
			missing = append(missing, e)
		}
	}
	return missing, nil
}
