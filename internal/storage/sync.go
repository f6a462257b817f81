package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Tables in dependency order: a table only references tables listed
// before it, except users.primary_workout_plan_id.
var dumpTables = []string{
	"users",
	"workout_plans",
	"workout_days",
	"workout_exercises",
}

// ExportTOML writes every row of the application tables to a single TOML
// file, one array of tables per database table. NULL columns are omitted.
func (s *Storage) ExportTOML(ctx context.Context, outputPath string) error {
	dbDump := make(map[string][]map[string]any)

	for _, table := range dumpTables {
		rows, err := s.dumpTable(ctx, table)
		if err != nil {
			return err
		}
		if len(rows) > 0 {
			dbDump[table] = rows
		}
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dbDump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

func (s *Storage) dumpTable(ctx context.Context, table string) ([]map[string]any, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s ORDER BY id", table))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s: %w", table, err)
	}

	var tableData []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row in table %s: %w", table, err)
		}

		row := make(map[string]any, len(cols))
		for i, col := range cols {
			switch val := values[i].(type) {
			case nil:
			case []byte:
				row[col] = string(val)
			default:
				row[col] = val
			}
		}
		tableData = append(tableData, row)
	}
	return tableData, rows.Err()
}

// ImportTOML replaces the content of the application tables with the rows
// of a dump written by ExportTOML. Unknown tables in the dump are rejected.
func (s *Storage) ImportTOML(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("reading file %s: %w", filePath, err)
	}

	var dbDump map[string][]map[string]any
	if _, err := toml.Decode(string(data), &dbDump); err != nil {
		return fmt.Errorf("decoding TOML: %w", err)
	}
	for table := range dbDump {
		if !isDumpTable(table) {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// users and workout_plans reference each other; checks run at commit.
	if _, err := tx.ExecContext(ctx, "PRAGMA defer_foreign_keys = ON"); err != nil {
		return fmt.Errorf("deferring foreign keys: %w", err)
	}

	for i := len(dumpTables) - 1; i >= 0; i-- {
		table := dumpTables[i]
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("clearing table %s: %w", table, err)
		}
	}

	for _, table := range dumpTables {
		for _, row := range dbDump[table] {
			columns := make([]string, 0, len(row))
			placeholders := make([]string, 0, len(row))
			values := make([]any, 0, len(row))
			for col, val := range row {
				columns = append(columns, col)
				placeholders = append(placeholders, "?")
				values = append(values, val)
			}
			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
				table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				return fmt.Errorf("inserting into table %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return s.refreshUser(ctx)
}

func isDumpTable(name string) bool {
	for _, t := range dumpTables {
		if t == name {
			return true
		}
	}
	return false
}

// DefaultExportPath is ~/.config/myfitlist/db_dump.toml.
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "myfitlist")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "db_dump.toml"), nil
}
