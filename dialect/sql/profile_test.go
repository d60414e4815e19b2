package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesinger/typeorm/dialect"
)

func TestDialectProfile(t *testing.T) {
	for _, name := range []string{
		dialect.Postgres, dialect.CockroachDB, dialect.AuroraPostgres,
		dialect.MySQL, dialect.MariaDB, dialect.AuroraMySQL,
		dialect.SQLite, dialect.SQLServer, dialect.Oracle,
		dialect.HANA, dialect.Spanner,
	} {
		t.Run(name, func(t *testing.T) {
			p := DialectProfile(name)
			require.NotNil(t, p)
			assert.Equal(t, name, p.Dialect)
		})
	}

	t.Run("UnknownFallsBackToANSI", func(t *testing.T) {
		p := DialectProfile("frobnicator")
		require.NotNil(t, p)
		assert.Equal(t, "frobnicator", p.Dialect)
		assert.Equal(t, UpsertNone, p.Upsert)
		assert.Equal(t, ReturningNone, p.Returning)
		assert.Equal(t, "?", p.PlaceholderFor(1))
	})
}

func TestProfile_Capabilities(t *testing.T) {
	t.Run("Postgres", func(t *testing.T) {
		p := DialectProfile(dialect.Postgres)
		assert.Equal(t, UpsertOnConflict, p.Upsert)
		assert.Equal(t, ReturningClause, p.Returning)
		assert.True(t, p.MultiRowReturning)
		assert.True(t, p.MultiRowValues)
		assert.True(t, p.NativeUUID)
		assert.Empty(t, p.IgnoreModifier)
	})
	t.Run("CockroachDBMatchesPostgres", func(t *testing.T) {
		p, pg := DialectProfile(dialect.CockroachDB), DialectProfile(dialect.Postgres)
		assert.Equal(t, pg.Upsert, p.Upsert)
		assert.Equal(t, pg.Returning, p.Returning)
		assert.Equal(t, pg.Placeholder, p.Placeholder)
	})
	t.Run("MySQL", func(t *testing.T) {
		p := DialectProfile(dialect.MySQL)
		assert.Equal(t, UpsertOnDuplicateKey, p.Upsert)
		assert.Equal(t, ReturningNone, p.Returning)
		assert.Equal(t, "IGNORE", p.IgnoreModifier)
		assert.Equal(t, EmptyValuesList, p.EmptyInsert)
	})
	t.Run("MariaDBExtendsMySQL", func(t *testing.T) {
		p := DialectProfile(dialect.MariaDB)
		assert.Equal(t, UpsertOnDuplicateKey, p.Upsert)
		assert.Equal(t, ReturningClause, p.Returning)
		assert.True(t, p.MultiRowReturning)
	})
	t.Run("SQLite", func(t *testing.T) {
		p := DialectProfile(dialect.SQLite)
		assert.Equal(t, "OR IGNORE", p.IgnoreModifier)
		assert.False(t, p.DefaultKeyword)
		assert.False(t, p.NativeUUID)
	})
	t.Run("SQLServer", func(t *testing.T) {
		p := DialectProfile(dialect.SQLServer)
		assert.Equal(t, UpsertNone, p.Upsert)
		assert.Equal(t, ReturningOutput, p.Returning)
		assert.True(t, p.IdentityInsert)
	})
	t.Run("Oracle", func(t *testing.T) {
		p := DialectProfile(dialect.Oracle)
		assert.False(t, p.MultiRowValues)
		assert.Equal(t, "DUAL", p.DualTable)
		assert.True(t, p.KeepIncrementColumn)
		assert.Equal(t, EmptyColumnDefaults, p.EmptyInsert)
	})
	t.Run("HANA", func(t *testing.T) {
		p := DialectProfile(dialect.HANA)
		assert.False(t, p.MultiRowValues)
		assert.Equal(t, "DUMMY", p.DualTable)
		assert.True(t, p.KeepIncrementColumn)
	})
}

func TestProfile_PlaceholderFor(t *testing.T) {
	assert.Equal(t, "$3", DialectProfile(dialect.Postgres).PlaceholderFor(3))
	assert.Equal(t, "?", DialectProfile(dialect.MySQL).PlaceholderFor(3))
	assert.Equal(t, ":3", DialectProfile(dialect.Oracle).PlaceholderFor(3))
	assert.Equal(t, "@p3", DialectProfile(dialect.SQLServer).PlaceholderFor(3))
}

func TestProfile_QuoteIdent(t *testing.T) {
	assert.Equal(t, `"users"`, DialectProfile(dialect.Postgres).QuoteIdent("users"))
	assert.Equal(t, "`users`", DialectProfile(dialect.MySQL).QuoteIdent("users"))
	assert.Equal(t, "[users]", DialectProfile(dialect.SQLServer).QuoteIdent("users"))
}

func TestUpsertStyle_String(t *testing.T) {
	assert.Equal(t, "none", UpsertNone.String())
	assert.Equal(t, "on-conflict", UpsertOnConflict.String())
	assert.Equal(t, "on-duplicate-key", UpsertOnDuplicateKey.String())
}
