// Package typeorm provides a multi-dialect SQL INSERT compiler and its
// execution layer.
//
// The root package holds the shared error vocabulary. The interesting entry
// points live in the subpackages:
//
//   - dialect: engine identifiers and the Driver/Tx interfaces
//   - dialect/sql: the insert builder, per-dialect capability profiles,
//     and the database/sql driver implementation
//   - dialect/sql/sqlgraph: the creation orchestrator that compiles a
//     CreateSpec, runs it under a transaction, and merges generated values
//     back into the caller's records
//   - schema/field: column type and value-generation vocabulary
//
// A minimal creation looks like:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := sqlgraph.CreateNode(ctx, drv, &sqlgraph.CreateSpec{
//	    Table: "users",
//	    Rows:  []sql.ValueSet{{"name": "mash"}},
//	})
package typeorm
