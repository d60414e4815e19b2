// Package schema groups the table-description vocabulary consumed by the
// SQL compiler.
//
// Its field subpackage holds the dialect-independent column types and value
// generation strategies. The column metadata itself (names, keys, defaults,
// spatial attributes) lives in dialect/sql.ColumnSpec and is assembled by
// the caller:
//
//	id := sql.NewColumn("id", field.TypeInt)
//	id.Primary = true
//	id.Generation = field.GenerateIncrement
//
//	name := sql.NewColumn("name", field.TypeString)
//
//	sql.Dialect(dialect.Postgres).
//	    Insert("users").
//	    Metadata(id, name).
//	    Rows(sql.ValueSet{"name": "mash"})
package schema
