package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Discovered(t *testing.T) {
	sorted := Migrations.Sorted()
	require.Len(t, sorted, 3)

	wantComments := []string{"create_users", "create_friend_requests", "create_friendships"}
	for i, m := range sorted {
		assert.Equal(t, wantComments[i], m.Comment)
		assert.NotNil(t, m.Up, "missing up migration for %s", m.Name)
		assert.NotNil(t, m.Down, "missing down migration for %s", m.Name)
	}
}
