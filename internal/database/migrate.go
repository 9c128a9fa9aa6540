package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ielts-reading/internal/logger"

	"go.uber.org/zap"
)

// Execer is satisfied by *sql.DB and *sqlx.DB
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// oraNameInUse is raised when CREATE TABLE/INDEX targets an existing object
const oraNameInUse = "ORA-00955"

// RunMigrations executes every *.up.sql file in dir in lexical order. Files may hold several
// statements separated by ";" at line end. Objects that already exist are skipped, so the
// migrations can be re-run.
func RunMigrations(ctx context.Context, db Execer, dir string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	l := logger.Get()
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.Name(), err)
		}

		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				if strings.Contains(err.Error(), oraNameInUse) {
					l.Info("Migration object already exists, skipping", zap.String("file", file.Name()))
					continue
				}
				return fmt.Errorf("could not execute migration %s: %w", file.Name(), err)
			}
		}

		l.Info("Executed migration", zap.String("file", file.Name()))
	}

	l.Info("Migrations completed successfully")
	return nil
}

// SplitStatements splits a script on semicolons that end a line and drops the terminator,
// which the Oracle driver rejects.
func SplitStatements(script string) []string {
	var statements []string
	var current strings.Builder
	for _, line := range strings.Split(strings.ReplaceAll(script, "\r\n", "\n"), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if strings.HasSuffix(trimmed, ";") {
			current.WriteString(strings.TrimSuffix(trimmed, ";"))
			statements = append(statements, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
