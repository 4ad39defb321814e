package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	for _, table := range []string{"users", "tournaments", "teams", "enrollments"} {
		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "Querying for %s table should not produce an error", table)
		assert.Equal(t, table, name)
	}

	// The second migration adds healing_time_played.
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('enrollments') WHERE name = 'healing_time_played'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInitDB_EnforcesUniqueEnrollment(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()

	_, err = db.Exec(`INSERT INTO users (id, battlenet_id) VALUES (1, 'Creator#1111'), (2, 'Player#2222')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO tournaments (id, name, creator_user_id, no_of_teams) VALUES (1, 'Cup', 1, 2)`)
	require.NoError(t, err)

	insert := `INSERT INTO enrollments (user_id, tournament_id, role_summary, first_role, second_role, created_at) VALUES (2, 1, '[]', 'tank', 'support', 0)`
	_, err = db.Exec(insert)
	require.NoError(t, err)
	_, err = db.Exec(insert)
	assert.Error(t, err, "a second enrollment for the same player and tournament must be rejected")
}
