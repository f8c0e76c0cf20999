package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"

	"github.com/angelmondragon/pawhaven-backend/pkg/db/models"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestEmbeddedMigrationsCoverModelColumns(t *testing.T) {
	files, err := fs.Glob(embedded, embeddedDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	var sql strings.Builder
	for _, file := range files {
		b, err := fs.ReadFile(embedded, file)
		require.NoError(t, err)
		sql.Write(b)
	}
	ddl := sql.String()

	cache := &sync.Map{}
	for _, model := range models.All() {
		s, err := schema.Parse(model, cache, schema.NamingStrategy{})
		require.NoError(t, err)

		start := strings.Index(ddl, "CREATE TABLE IF NOT EXISTS "+s.Table+" (")
		require.GreaterOrEqual(t, start, 0, "missing table %s", s.Table)
		end := strings.Index(ddl[start:], ");")
		require.Greater(t, end, 0)
		body := ddl[start : start+end]

		for _, column := range s.DBNames {
			require.Contains(t, body, "\n    "+column+" ", "table %s missing column %s", s.Table, column)
		}
	}
}

func TestCreateSQLMigrationThenValidate(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	path, err := createSQLMigration(dir, "Add Pet Tags!", at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260301120000_add_pet_tags.sql"), path)
	require.NoError(t, ValidateDir(dir))

	_, err = createSQLMigration(dir, "add pet tags", at)
	require.Error(t, err, "same version and name must not be overwritten")

	_, err = createSQLMigration(dir, "!!!", at)
	require.Error(t, err)
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_init.sql"), []byte("-- +goose Up\n"), 0o644))
	require.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	body := []byte("-- +goose Up\n-- +goose Down\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_a.sql"), body, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260301120000_b.sql"), body, 0o644))
	require.Error(t, ValidateDir(dir))

	require.Error(t, ValidateDir(""))
}

func TestCheckAnnotations(t *testing.T) {
	valid := "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n-- +goose StatementEnd\n-- +goose Down\nSELECT 2;\n"
	require.NoError(t, checkAnnotations([]byte(valid)))

	for name, body := range map[string]string{
		"down before up":   "-- +goose Down\n-- +goose Up\n",
		"two up sections":  "-- +goose Up\n-- +goose Up\n-- +goose Down\n",
		"unclosed stmt":    "-- +goose Up\n-- +goose Down\n-- +goose StatementBegin\n",
		"stray stmt end":   "-- +goose Up\n-- +goose StatementEnd\n-- +goose Down\n",
		"down inside stmt": "-- +goose Up\n-- +goose StatementBegin\n-- +goose Down\n-- +goose StatementEnd\n",
	} {
		require.Error(t, checkAnnotations([]byte(body)), name)
	}
}

func TestSourceResolvesEmbeddedAndDisk(t *testing.T) {
	fsys, err := source("")
	require.NoError(t, err)
	require.NoError(t, ValidateFS(fsys, "."))

	_, err = source(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	_, err = NewMigrator(nil, "", nil)
	require.Error(t, err)
}
