// Package field defines the column type vocabulary shared by the SQL
// compiler and its callers.
//
// A field.Type identifies the logical type of a table column and drives
// driver-level value coercion:
//
//	field.TypeString
//	field.TypeInt64
//	field.TypeUUID
//	field.TypeGeometry
//
// A field.GenerationStrategy describes how a column obtains its value when
// none is supplied on insert:
//
//	field.GenerateNone       // value must be provided (or defaulted)
//	field.GenerateIncrement  // engine-assigned auto-increment / sequence
//	field.GenerateUUID       // UUID, app-generated on engines without native support
//
// Column-level metadata (storage name, primary/insertable flags, spatial
// SRID, declared defaults) is carried by dialect/sql.ColumnSpec; this package
// intentionally holds only the dialect-independent vocabulary.
package field
