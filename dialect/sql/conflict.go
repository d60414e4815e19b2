package sql

import (
	"github.com/mesinger/typeorm"
)

// conflict holds the conflict policy of an insert: the conflict target, the
// resolution action, or a raw clause emitted verbatim.
type conflict struct {
	target struct {
		constraint string
		columns    []string
		where      string
	}
	action struct {
		nothing   bool
		ignore    bool
		newValues bool
		update    []func(*UpdateSet)
	}
	expr string
}

// ConflictOption allows configuring the `ON CONFLICT` / `ON DUPLICATE KEY`
// clause of the `INSERT` statement.
type ConflictOption func(*conflict)

// ConflictColumns sets the unique constraint columns as the conflict target.
// It is only supported by engines with `ON CONFLICT` syntax and silently
// ignored elsewhere.
func ConflictColumns(columns ...string) ConflictOption {
	return func(c *conflict) {
		c.target.columns = append(c.target.columns, columns...)
	}
}

// ConflictConstraint sets the symbolic constraint name as the conflict
// target (`ON CONFLICT ON CONSTRAINT <name>`).
func ConflictConstraint(name string) ConflictOption {
	return func(c *conflict) {
		c.target.constraint = name
	}
}

// ConflictWhere sets a raw predicate for a partial-index conflict target.
func ConflictWhere(expr string) ConflictOption {
	return func(c *conflict) {
		c.target.where = expr
	}
}

// ConflictExpr sets a raw conflict clause, emitted verbatim after the
// VALUES body. It overrides any structured conflict options.
func ConflictExpr(expr string) ConflictOption {
	return func(c *conflict) {
		c.expr = expr
	}
}

// DoNothing configures the conflict action to `DO NOTHING`.
// Supported only by engines with `ON CONFLICT` syntax.
func DoNothing() ConflictOption {
	return func(c *conflict) {
		c.action.nothing = true
	}
}

// ResolveWithIgnore resolves the conflict by keeping the existing row
// untouched. On `ON CONFLICT` engines it compiles to `DO NOTHING`; on
// `ON DUPLICATE KEY` engines it compiles to the `INSERT IGNORE` modifier
// and no upsert clause.
func ResolveWithIgnore() ConflictOption {
	return func(c *conflict) {
		c.action.ignore = true
	}
}

// ResolveWithNewValues updates every inserted column with the value that
// was proposed on insert (`EXCLUDED.col` / `VALUES(col)`).
func ResolveWithNewValues() ConflictOption {
	return func(c *conflict) {
		c.action.newValues = true
	}
}

// ResolveWith allows setting explicit update values on conflict.
func ResolveWith(fn func(*UpdateSet)) ConflictOption {
	return func(c *conflict) {
		c.action.update = append(c.action.update, fn)
	}
}

// assignment is one `col = ...` entry of the conflict update set.
type assignment struct {
	column   string
	value    any
	excluded bool
	null     bool
}

// UpdateSet describes the update statement modifier of an upsert.
type UpdateSet struct {
	columns []string
	assigns []assignment
}

// Columns returns the columns of the insert statement the update set is
// attached to.
func (u *UpdateSet) Columns() []string {
	return u.columns
}

// Set sets a parameter-bound value for the column on conflict.
func (u *UpdateSet) Set(column string, v any) *UpdateSet {
	u.assigns = append(u.assigns, assignment{column: column, value: v})
	return u
}

// SetExcluded sets the column to the value that was proposed for insertion,
// using `EXCLUDED.col` or `VALUES(col)` depending on the dialect.
func (u *UpdateSet) SetExcluded(column string) *UpdateSet {
	u.assigns = append(u.assigns, assignment{column: column, excluded: true})
	return u
}

// SetNull sets the column to NULL on conflict.
func (u *UpdateSet) SetNull(column string) *UpdateSet {
	u.assigns = append(u.assigns, assignment{column: column, null: true})
	return u
}

// writeConflict emits the dialect-appropriate upsert clause. The dispatch
// on the profile's upsert style is exhaustive: `ON CONFLICT` engines get
// the full target/action grammar, `ON DUPLICATE KEY` engines silently drop
// the conflict target, and everything else is rejected at compile time.
func (i *InsertBuilder) writeConflict(columns []string) {
	c := i.conflict
	if c == nil {
		return
	}
	p := i.Profile()
	if c.expr != "" {
		i.Pad().WriteString(c.expr)
		return
	}
	switch p.Upsert {
	case UpsertOnConflict:
		i.WriteString(" ON CONFLICT")
		switch t := c.target; {
		case len(t.columns) > 0:
			i.WriteString(" (").IdentComma(t.columns...).WriteByte(')')
			if t.where != "" {
				i.WriteString(" WHERE ").WriteString(t.where)
			}
		case t.constraint != "":
			i.WriteString(" ON CONSTRAINT ").Ident(t.constraint)
		}
		switch {
		case c.action.nothing || c.action.ignore:
			i.WriteString(" DO NOTHING")
		default:
			i.WriteString(" DO UPDATE SET ")
			i.writeUpdateSet(columns)
		}
	case UpsertOnDuplicateKey:
		// The conflict target is not expressible and is silently dropped.
		switch {
		case c.action.nothing || c.action.ignore:
			// Plain ignore compiles to the INSERT IGNORE modifier with no
			// upsert clause. Preserved as observed in the reference
			// behavior for the ignore-without-update-columns case.
		default:
			i.WriteString(" ON DUPLICATE KEY UPDATE ")
			i.writeUpdateSet(columns)
		}
	case UpsertNone:
		i.AddError(typeorm.NewUnsupportedUpsertError(i.Dialect()))
	}
}

// writeUpdateSet renders the `col = ...` list of the conflict action.
func (i *InsertBuilder) writeUpdateSet(columns []string) {
	u := &UpdateSet{columns: columns}
	if i.conflict.action.newValues {
		for _, col := range columns {
			u.SetExcluded(col)
		}
	}
	for _, fn := range i.conflict.action.update {
		fn(u)
	}
	if len(u.assigns) == 0 {
		// Nothing to update resolves to keeping the conflicting row.
		for _, col := range columns {
			u.SetExcluded(col)
		}
	}
	p := i.Profile()
	for n, a := range u.assigns {
		if n > 0 {
			i.Comma()
		}
		i.Ident(a.column).WriteString(" = ")
		switch {
		case a.null:
			i.WriteString("NULL")
		case a.excluded && p.Upsert == UpsertOnDuplicateKey:
			i.WriteString("VALUES(").Ident(a.column).WriteByte(')')
		case a.excluded:
			i.WriteString("EXCLUDED.").Ident(a.column)
		default:
			i.Arg(a.value)
		}
	}
}
