package migrate

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const versionLayout = "20060102150405"

var (
	fileNameRe = regexp.MustCompile(`^(\d{14})_([a-z0-9]+(?:_[a-z0-9]+)*)\.sql$`)
	slugRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

const (
	annotUp           = "-- +goose Up"
	annotDown         = "-- +goose Down"
	annotStmtBegin    = "-- +goose StatementBegin"
	annotStmtEnd      = "-- +goose StatementEnd"
	migrationTemplate = annotUp + `
-- %[1]s (Postgres)

` + annotDown + `
-- revert %[1]s
`
)

// CreateSQLMigration writes an empty goose migration named
// <dir>/<UTC timestamp>_<slug>.sql and returns its path.
func CreateSQLMigration(dir, name string) (string, error) {
	return createSQLMigration(dir, name, time.Now())
}

func createSQLMigration(dir, name string, at time.Time) (string, error) {
	if dir == "" {
		return "", errors.New("migrations dir is required")
	}
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}

	file := filepath.Join(dir, at.UTC().Format(versionLayout)+"_"+slug+".sql")
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create migration: %w", err)
	}
	defer f.Close()
	if _, err := fmt.Fprintf(f, migrationTemplate, slug); err != nil {
		return "", fmt.Errorf("write migration %s: %w", file, err)
	}
	return file, nil
}

// ValidateDir validates the migrations in a directory on disk.
func ValidateDir(dir string) error {
	if dir == "" {
		return errors.New("migrations dir is required")
	}
	return ValidateFS(os.DirFS(dir), ".")
}

// ValidateEmbedded validates the migrations compiled into the binary.
func ValidateEmbedded() error {
	return ValidateFS(embedded, embeddedDir)
}

// ValidateFS checks every .sql file under dir: the name must be
// <14 digit version>_<slug>.sql with a unique version, and the body must hold
// one Up section followed by one Down section with balanced statement blocks.
func ValidateFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	versions := make(map[string]string, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".sql" {
			continue
		}
		match := fileNameRe.FindStringSubmatch(name)
		if match == nil {
			return fmt.Errorf("%s: expected <YYYYMMDDHHMMSS>_<name>.sql", name)
		}
		if _, err := time.Parse(versionLayout, match[1]); err != nil {
			return fmt.Errorf("%s: version is not a timestamp", name)
		}
		if other, dup := versions[match[1]]; dup {
			return fmt.Errorf("%s: version %s already used by %s", name, match[1], other)
		}
		versions[match[1]] = name

		body, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		if err := checkAnnotations(body); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func checkAnnotations(body []byte) error {
	var ups, downs int
	inStmt := false
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for line := 1; scanner.Scan(); line++ {
		switch strings.TrimSpace(scanner.Text()) {
		case annotUp:
			if ups > 0 || downs > 0 {
				return fmt.Errorf("line %d: unexpected Up section", line)
			}
			ups++
		case annotDown:
			if ups == 0 || downs > 0 || inStmt {
				return fmt.Errorf("line %d: unexpected Down section", line)
			}
			downs++
		case annotStmtBegin:
			if inStmt {
				return fmt.Errorf("line %d: nested StatementBegin", line)
			}
			inStmt = true
		case annotStmtEnd:
			if !inStmt {
				return fmt.Errorf("line %d: StatementEnd without StatementBegin", line)
			}
			inStmt = false
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	switch {
	case ups == 0:
		return fmt.Errorf("missing %q", annotUp)
	case downs == 0:
		return fmt.Errorf("missing %q", annotDown)
	case inStmt:
		return errors.New("unterminated StatementBegin")
	}
	return nil
}
