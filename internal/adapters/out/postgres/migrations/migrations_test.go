package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(files, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}
	assert.Equal(t, ups, downs)
}

func TestInitialSchemaDeclaresUniquenessConstraints(t *testing.T) {
	raw, err := fs.ReadFile(files, "sql/000001_init.up.sql")
	require.NoError(t, err)
	schema := string(raw)

	for _, name := range []string{
		"users_email_key",
		"baker_applications_one_pending_key",
		"reviews_order_key",
		"orders_junior_needs_main",
	} {
		assert.Contains(t, schema, name)
	}
}
