// Package sql provides INSERT statement compilation and database dialect
// abstraction.
//
// The package compiles record-shaped value sets into dialect-correct
// INSERT statements for every supported engine, together with a flat
// positional parameter array. It provides a fluent API modeled after the
// low-level string builder.
//
// # Builder Types
//
//   - Builder: Low-level SQL string builder with identifier quoting and
//     parameter tracking
//   - InsertBuilder: INSERT statement builder with upsert, RETURNING and
//     identity-insert support
//   - Profile: per-dialect capability descriptor driving compilation
//
// # Dialect Support
//
// SQL generation adapts to the engine's capability profile:
//
//	import "github.com/mesinger/typeorm/dialect"
//
//	// PostgreSQL
//	sql.Dialect(dialect.Postgres).
//	    Insert("users").
//	    Columns("name").
//	    Values("mash").
//	    Query()
//	// INSERT INTO "users" ("name") VALUES ($1) and ["mash"]
//
//	// MySQL
//	sql.Dialect(dialect.MySQL).Insert("users") // backticks and ? markers
//
// # Value Sets
//
// Rows are described as column→value maps. Besides plain Go values, a
// column can receive its database-side default or a raw SQL expression:
//
//	sql.ValueSet{
//	    "name":       "mash",
//	    "rank":       sql.Default,
//	    "updated_at": sql.Raw("CURRENT_TIMESTAMP"),
//	}
//
// # Conflict Handling
//
// Upserts are configured with conflict options and compile to the
// engine's native clause:
//
//	sql.Dialect(dialect.Postgres).
//	    Insert("users").
//	    Columns("id", "name").
//	    Values(1, "mash").
//	    OnConflict(
//	        sql.ConflictColumns("id"),
//	        sql.ResolveWithNewValues(),
//	    )
//	// ... ON CONFLICT ("id") DO UPDATE SET "id" = EXCLUDED."id", ...
//
// # Returning Values
//
// Dialects with a RETURNING or OUTPUT clause can report inserted values:
//
//	sql.Dialect(dialect.Postgres).
//	    Insert("users").
//	    Columns("name").
//	    Values("mash").
//	    Returning("id")
//
// Requesting it on an engine without one fails at configuration time with
// ReturningNotSupportedError.
package sql
