package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
)

// FullTextIndexDDL creates the expression index used by the Postgres full-text searcher.
// The expression must match search.PostgresSearcher byte for byte, otherwise the planner ignores it.
const FullTextIndexDDL = `CREATE INDEX IF NOT EXISTS idx_posts_fulltext ON posts
	USING GIN (to_tsvector('simple', coalesce(post_title, '') || ' ' || coalesce(post_body, '')))`

// All lists every persisted model, in dependency order.
func All() []interface{} {
	return []interface{}{&Blog{}, &Post{}}
}

// Migrate creates or updates the blogs and posts tables and the full-text index.
func Migrate(db *gorm.DB) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := migrateDB.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if err := migrateDB.Exec(FullTextIndexDDL).Error; err != nil {
		return fmt.Errorf("create full-text index: %w", err)
	}
	return nil
}

// GenerateQueries writes typed query helpers for the models into outPath.
func GenerateQueries(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)
	g.ApplyBasic(Blog{}, Post{})
	g.Execute()
}

// TableReport lists database columns that no model field maps to.
type TableReport struct {
	Table    string
	Exists   bool
	Unmapped []string
	QueryErr error
}

/*
ColumnMismatchReport compares each table's columns (information_schema) against the
column names declared in the gorm tags of the matching model. A column that exists in
the database but has no field is listed as unmapped.
*/
func ColumnMismatchReport(db *gorm.DB) []TableReport {
	modelMappings := map[string]interface{}{
		Blog{}.TableName(): Blog{},
		Post{}.TableName(): Post{},
	}

	tables := make([]string, 0, len(modelMappings))
	for table := range modelMappings {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	reports := make([]TableReport, 0, len(tables))
	for _, table := range tables {
		report := TableReport{Table: table, Exists: true}

		dbColumns, err := getTableColumns(db, table)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				report.Exists = false
			} else {
				report.QueryErr = err
			}
			reports = append(reports, report)
			continue
		}

		report.Unmapped = findColumnMismatches(dbColumns, getModelFields(modelMappings[table]))
		reports = append(reports, report)
	}
	return reports
}

// getTableColumns retrieves column names from a database table
func getTableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`

	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", tableName, err)
	}

	if len(columns) == 0 {
		var tableExists bool
		tableQuery := `
			SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = CURRENT_SCHEMA()
				AND table_name = ?
			)
		`
		if err := db.Raw(tableQuery, tableName).Scan(&tableExists).Error; err != nil {
			return nil, fmt.Errorf("error checking if table %s exists: %w", tableName, err)
		}

		if !tableExists {
			return nil, fmt.Errorf("table %s does not exist", tableName)
		}
	}

	return columns, nil
}

// getModelFields extracts column names from a Go struct using reflection
func getModelFields(model interface{}) []string {
	var fields []string
	t := reflect.TypeOf(model)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}

		gormTag := field.Tag.Get("gorm")
		if gormTag == "" || gormTag == "-" || strings.Contains(gormTag, "foreignKey:") {
			continue
		}

		if columnName := extractColumnNameFromGormTag(gormTag); columnName != "" {
			fields = append(fields, columnName)
			continue
		}
		// primary keys without an explicit column fall back to the db tag
		if dbTag := field.Tag.Get("db"); dbTag != "" {
			fields = append(fields, dbTag)
		}
	}

	return fields
}

// extractColumnNameFromGormTag extracts the column name from a GORM tag
func extractColumnNameFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// findColumnMismatches finds columns that exist in the database but not in the model
func findColumnMismatches(dbColumns, modelFields []string) []string {
	modelFieldSet := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		modelFieldSet[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !modelFieldSet[col] {
			mismatches = append(mismatches, col)
		}
	}

	return mismatches
}
