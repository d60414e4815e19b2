package sql

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesinger/typeorm/schema/field"
)

// A ValueSet is one record's column→value mapping destined for a single
// inserted row. Values are plain Go values bound as parameters, the Default
// marker, or a Raw expression.
type ValueSet map[string]any

// DefaultMarker marks a column to receive its database-side default value.
// How the marker compiles depends on the dialect: the DEFAULT keyword where
// tuples accept it, otherwise the column's declared default expression or
// an explicit NULL.
type DefaultMarker struct{}

// Default is the value used to request a column's database-side default.
var Default = DefaultMarker{}

// RawExpr is a raw SQL fragment used as a column value. It is emitted
// verbatim and never parameterized.
type RawExpr struct {
	Expr string
}

// Raw returns a raw SQL expression value.
//
//	sql.ValueSet{"updated_at": sql.Raw("CURRENT_TIMESTAMP")}
func Raw(expr string) RawExpr {
	return RawExpr{Expr: expr}
}

// A ColumnSpec describes one table column to the insert compiler. It is
// owned by the caller's schema metadata and read-only here.
type ColumnSpec struct {
	// Name is the logical column name used as the ValueSet key.
	Name string
	// Storage is the column name in the database. Defaults to Name.
	Storage string
	// Type is the logical column type, used for driver value coercion.
	Type field.Type
	// Primary reports whether the column is part of the primary key.
	Primary bool
	// Generation describes how the column obtains a value when none is
	// supplied.
	Generation field.GenerationStrategy
	// Insertable reports whether the column participates in implicit
	// column selection.
	Insertable bool
	// Version marks an optimistic-locking version column. Unsupplied
	// version columns start at 1.
	Version bool
	// Discriminator marks the column holding the table's fixed
	// discriminator constant.
	Discriminator bool
	// Spatial marks a geometry column whose parameter is wrapped with the
	// dialect's spatial constructor function.
	Spatial bool
	// SRID is the spatial reference identifier passed to the spatial
	// constructor. Zero means none.
	SRID int
	// Default is the column's declared default expression, emitted where
	// the DEFAULT keyword is not accepted.
	Default string
}

// NewColumn returns an insertable ColumnSpec with the given name and type.
func NewColumn(name string, t field.Type) *ColumnSpec {
	return &ColumnSpec{Name: name, Type: t, Insertable: true}
}

// StorageName returns the database column name.
func (c *ColumnSpec) StorageName() string {
	if c.Storage != "" {
		return c.Storage
	}
	return c.Name
}

// value is one normalized column value: a bound parameter, a verbatim SQL
// fragment, or the use-default marker resolved later against the dialect.
type value struct {
	col    *ColumnSpec
	arg    any
	expr   string
	param  bool
	useDef bool
}

// resolve normalizes the value of col in the idx-th value set, applying the
// resolution precedence: version start value, discriminator constant,
// app-side UUID generation, default marker, raw expression, and finally a
// coerced bound parameter.
func (i *InsertBuilder) resolve(col *ColumnSpec, vs ValueSet, idx int) value {
	p := i.Profile()
	v, ok := vs[col.Name]
	switch {
	case col.Version && !ok:
		return value{col: col, arg: int64(1), param: true}
	case col.Discriminator && i.discriminator != nil:
		return value{col: col, arg: i.discriminator, param: true}
	case col.Generation == field.GenerateUUID && (!ok || v == nil):
		if p.NativeUUID {
			return value{col: col, useDef: true}
		}
		u := uuid.New().String()
		i.setGenerated(idx, col.Name, u)
		return value{col: col, arg: u, param: true}
	case !ok:
		return value{col: col, useDef: true}
	}
	switch v := v.(type) {
	case DefaultMarker, *DefaultMarker:
		return value{col: col, useDef: true}
	case RawExpr:
		return value{col: col, expr: v.Expr}
	case *RawExpr:
		return value{col: col, expr: v.Expr}
	default:
		return value{col: col, arg: i.coerce(col, v), param: true}
	}
}

// coerce applies driver-level value normalization for the column type.
func (i *InsertBuilder) coerce(col *ColumnSpec, v any) any {
	switch col.Type {
	case field.TypeUUID:
		switch v := v.(type) {
		case uuid.UUID:
			return v.String()
		case fmt.Stringer:
			return v.String()
		}
	case field.TypeJSON, field.TypeGeometry:
		switch v.(type) {
		case string, []byte, json.RawMessage, nil:
		default:
			if buf, err := json.Marshal(v); err == nil {
				return buf
			}
		}
	}
	return v
}

// setGenerated records an application-generated value for the idx-th value
// set so it can be written back after insertion.
func (i *InsertBuilder) setGenerated(idx int, column string, v any) {
	if i.generated == nil {
		i.generated = make(map[int]ValueSet)
	}
	if i.generated[idx] == nil {
		i.generated[idx] = ValueSet{}
	}
	i.generated[idx][column] = v
}

// GeneratedValues returns the values generated by the compiler for the
// idx-th value set (for example, application-side UUIDs), or nil.
func (i *InsertBuilder) GeneratedValues(idx int) ValueSet {
	return i.generated[idx]
}

// Generated returns all compiler-generated values, keyed by value-set index.
func (i *InsertBuilder) Generated() map[int]ValueSet {
	return i.generated
}
