package mongodb

import (
	"context"
	"testing"

	"github.com/lealre/reelstate/internal/testinfra"
	"github.com/stretchr/testify/require"
)

const testDbName = "testDb"

var testMongo *testinfra.Mongo

func TestMain(m *testing.M) {
	testinfra.Main(m, &testMongo)
}

// newTestDB returns an empty database with every index in place.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	testinfra.SkipIfNoMongo(t, testMongo)

	db := NewDB(testMongo.Client, testDbName)
	testinfra.ResetDB(t, db.Database)
	require.NoError(t, CreateAllIndexes(context.Background(), db, false))

	return db
}
