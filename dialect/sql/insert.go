package sql

import (
	"fmt"
	"sort"

	"github.com/mesinger/typeorm"
	"github.com/mesinger/typeorm/schema/field"
)

// CompiledStatement is the output of the insert compiler: an ordered list
// of SQL fragments to run together and one flat parameter array whose order
// matches placeholder occurrence order in the concatenated fragments.
type CompiledStatement struct {
	// Fragments holds the statements in execution order: an optional
	// identity-insert enable, the INSERT itself, an optional disable.
	Fragments []string
	// Args is the positional parameter array. Its length always equals
	// the number of placeholders across all fragments.
	Args []any
	// Main is the index of the INSERT fragment within Fragments.
	Main int
	// Returning holds the storage names of the columns reported back by
	// the statement, in clause order. Empty when nothing is reported.
	Returning []string
	// ReturningExpr reports that a raw returning expression was compiled
	// in. The reported column names are then known only to the database
	// and must be discovered from the result set.
	ReturningExpr bool
}

// HasReturning reports whether the compiled statement returns rows.
func (s *CompiledStatement) HasReturning() bool {
	return len(s.Returning) > 0 || s.ReturningExpr
}

// Empty reports whether the statement is the zero-effect no-op produced
// for an empty value-set sequence.
func (s *CompiledStatement) Empty() bool {
	return len(s.Fragments) == 0
}

// InsertBuilder is the builder for INSERT statements across all supported
// dialects. A builder describes one logical insert; it is not safe for
// concurrent use and not reusable after compilation.
type InsertBuilder struct {
	Builder
	table         string
	schema        string
	columns       []string
	metadata      []*ColumnSpec
	rows          []ValueSet
	discriminator any
	conflict      *conflict
	orIgnore      bool
	returning     []string
	returningExpr string
	updateEntity  bool
	generated     map[int]ValueSet
	stmt          *CompiledStatement
}

// Insert creates a builder for the INSERT statement.
//
//	Insert("users").Columns("name").Values("ariel")
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// Schema sets the database/schema qualifier of the target table.
func (i *InsertBuilder) Schema(name string) *InsertBuilder {
	i.schema = name
	return i
}

// Table returns the target table name.
func (i *InsertBuilder) Table() string {
	return i.table
}

// Columns sets the explicit column allow-list. When metadata is attached,
// names resolve against it; unknown names participate as plain columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Metadata attaches the table's column descriptors. Without metadata the
// builder operates in raw-table mode and derives columns from the value
// sets themselves.
func (i *InsertBuilder) Metadata(columns ...*ColumnSpec) *InsertBuilder {
	i.metadata = append(i.metadata, columns...)
	return i
}

// Discriminator sets the fixed constant stored in the table's
// discriminator column, if it has one.
func (i *InsertBuilder) Discriminator(v any) *InsertBuilder {
	i.discriminator = v
	return i
}

// Rows appends one value set per row to insert. An empty sequence is a
// valid, zero-effect insert.
func (i *InsertBuilder) Rows(rows ...ValueSet) *InsertBuilder {
	i.rows = append(i.rows, rows...)
	return i
}

// Values appends one row built from positional values paired with the
// explicit column list, in order.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	vs := make(ValueSet, len(values))
	for n, v := range values {
		if n < len(i.columns) {
			vs[i.columns[n]] = v
		} else {
			i.AddError(fmt.Errorf("sql/insert: value at index %d has no matching column", n))
		}
	}
	return i.Rows(vs)
}

// Records accepts a single record or an ordered sequence of records.
// Anything else fails with MissingValuesError; an empty sequence stays a
// valid no-op.
func (i *InsertBuilder) Records(v any) *InsertBuilder {
	switch v := v.(type) {
	case ValueSet:
		return i.Rows(v)
	case map[string]any:
		return i.Rows(ValueSet(v))
	case []ValueSet:
		return i.Rows(v...)
	case []map[string]any:
		for _, vs := range v {
			i.Rows(ValueSet(vs))
		}
		return i
	default:
		return i.AddErrorI(typeorm.NewMissingValuesError(i.table))
	}
}

// AddErrorI appends an error and returns the insert builder, keeping the
// fluent chain.
func (i *InsertBuilder) AddErrorI(err error) *InsertBuilder {
	i.AddError(err)
	return i
}

// OrIgnore requests the ignore conflict policy: conflicting rows are
// skipped. Compiles to the engine's INSERT IGNORE modifier or its
// `ON CONFLICT DO NOTHING` clause; engines with neither reject it.
func (i *InsertBuilder) OrIgnore() *InsertBuilder {
	i.orIgnore = true
	return i
}

// OnConflict configures the conflict policy of the insert.
func (i *InsertBuilder) OnConflict(opts ...ConflictOption) *InsertBuilder {
	if i.conflict == nil {
		i.conflict = &conflict{}
	}
	for _, opt := range opts {
		opt(i.conflict)
	}
	return i
}

// Returning requests the listed columns to be reported back by the
// statement. Requesting it on a dialect without a RETURNING or OUTPUT
// clause fails here, at configuration time.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	if i.Profile().Returning == ReturningNone {
		return i.AddErrorI(typeorm.NewReturningNotSupportedError(i.Dialect()))
	}
	i.returning = append(i.returning, columns...)
	return i
}

// ReturningExpr requests a raw returning expression, emitted verbatim.
func (i *InsertBuilder) ReturningExpr(expr string) *InsertBuilder {
	if i.Profile().Returning == ReturningNone {
		return i.AddErrorI(typeorm.NewReturningNotSupportedError(i.Dialect()))
	}
	i.returningExpr = expr
	return i
}

// UpdateEntity controls whether generated values (keys, defaults,
// versions) should be fetched back for merging into the input records.
// Extra returning columns are added as needed on capable dialects.
func (i *InsertBuilder) UpdateEntity(v bool) *InsertBuilder {
	i.updateEntity = v
	return i
}

// selection resolves the participating columns and, when the dialect
// requires it, the auto-increment column that needs the identity-insert
// toggle around the statement.
func (i *InsertBuilder) selection() (cols []*ColumnSpec, identity *ColumnSpec) {
	p := i.Profile()
	switch {
	case len(i.metadata) == 0:
		// Raw-table mode: tuples are built from the records' own keys.
		names := i.columns
		if len(names) == 0 {
			seen := make(map[string]struct{})
			for _, vs := range i.rows {
				for k := range vs {
					if _, ok := seen[k]; !ok {
						seen[k] = struct{}{}
						names = append(names, k)
					}
				}
			}
			sort.Strings(names)
		}
		for _, n := range names {
			cols = append(cols, &ColumnSpec{Name: n, Insertable: true})
		}
	case len(i.columns) > 0:
		byName := make(map[string]*ColumnSpec, len(i.metadata))
		for _, c := range i.metadata {
			byName[c.Name] = c
		}
		for _, n := range i.columns {
			if c, ok := byName[n]; ok {
				cols = append(cols, c)
			} else {
				cols = append(cols, &ColumnSpec{Name: n, Insertable: true})
			}
		}
	default:
		for _, c := range i.metadata {
			if !c.Insertable {
				continue
			}
			if c.Primary && c.Generation == field.GenerateIncrement {
				// Auto-increment keys are left to the engine, except on
				// dialects that must list them, or when the caller
				// supplied an explicit value.
				if p.KeepIncrementColumn || i.supplied(c.Name) {
					cols = append(cols, c)
				}
				continue
			}
			cols = append(cols, c)
		}
	}
	if p.IdentityInsert {
		for _, c := range cols {
			if c.Primary && c.Generation == field.GenerateIncrement && i.supplied(c.Name) {
				identity = c
				break
			}
		}
	}
	return cols, identity
}

// supplied reports whether any value set carries an explicit non-null,
// non-default value for the column.
func (i *InsertBuilder) supplied(column string) bool {
	for _, vs := range i.rows {
		v, ok := vs[column]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case DefaultMarker, *DefaultMarker:
		default:
			return true
		}
	}
	return false
}

// returningColumns computes the union of explicitly requested returning
// columns and the extra columns the update-entity feature needs,
// deduplicated by storage name. Multi-row returning is silently dropped on
// engines that cannot express it.
func (i *InsertBuilder) returningColumns() []string {
	p := i.Profile()
	if p.Returning == ReturningNone {
		return nil
	}
	if len(i.rows) > 1 && !p.MultiRowReturning {
		return nil
	}
	byName := make(map[string]*ColumnSpec, len(i.metadata))
	for _, c := range i.metadata {
		byName[c.Name] = c
	}
	var (
		list []string
		seen = make(map[string]struct{})
	)
	add := func(storage string) {
		if _, ok := seen[storage]; !ok {
			seen[storage] = struct{}{}
			list = append(list, storage)
		}
	}
	for _, n := range i.returning {
		if c, ok := byName[n]; ok {
			add(c.StorageName())
		} else {
			add(n)
		}
	}
	if i.updateEntity {
		for _, c := range i.metadata {
			if c.Generation != field.GenerateNone || c.Version || c.Default != "" {
				add(c.StorageName())
			}
		}
	}
	return list
}

// exprReturning returns the raw returning expression, suppressed under the
// same multi-row rule as column-list returning.
func (i *InsertBuilder) exprReturning() string {
	if len(i.rows) > 1 && !i.Profile().MultiRowReturning {
		return ""
	}
	return i.returningExpr
}

// Compile produces the dialect-correct statement fragments and parameter
// array. Compiling an empty value-set sequence yields an empty statement
// and no error. The result is cached; further configuration after Compile
// has no effect.
func (i *InsertBuilder) Compile() (*CompiledStatement, error) {
	if i.stmt != nil {
		return i.stmt, i.Err()
	}
	if err := i.Err(); err != nil {
		return nil, err
	}
	if len(i.rows) == 0 {
		i.stmt = &CompiledStatement{}
		return i.stmt, nil
	}
	cols, identity := i.selection()
	vals := make([][]value, len(i.rows))
	for idx, vs := range i.rows {
		vals[idx] = make([]value, 0, len(cols))
		for _, c := range cols {
			vals[idx] = append(vals[idx], i.resolve(c, vs, idx))
		}
	}
	returning := i.returningColumns()
	i.writeInsert(cols, vals, returning)
	if err := i.Err(); err != nil {
		i.args = nil
		return nil, err
	}
	stmt := &CompiledStatement{Args: i.args, Returning: returning, ReturningExpr: i.exprReturning() != ""}
	if identity != nil {
		stmt.Fragments = append(stmt.Fragments, "SET IDENTITY_INSERT "+i.qualifiedTable()+" ON")
		stmt.Main = 1
	}
	stmt.Fragments = append(stmt.Fragments, i.Builder.String())
	if identity != nil {
		stmt.Fragments = append(stmt.Fragments, "SET IDENTITY_INSERT "+i.qualifiedTable()+" OFF")
	}
	i.stmt = stmt
	return stmt, nil
}

// Query returns the INSERT statement text and its parameters for
// inspection and logging. Configuration errors surface through Err.
func (i *InsertBuilder) Query() (string, []any) {
	stmt, err := i.Compile()
	if err != nil || stmt.Empty() {
		return "", nil
	}
	return stmt.Fragments[stmt.Main], stmt.Args
}

// writeInsert emits, in fixed order: the statement keyword with an
// optional ignore modifier, the target table, the column list, an OUTPUT
// clause for dialects that place returning columns before VALUES, the
// VALUES or SELECT body, the upsert clause, and a trailing RETURNING
// clause for dialects that place it after VALUES.
func (i *InsertBuilder) writeInsert(cols []*ColumnSpec, vals [][]value, returning []string) {
	p := i.Profile()
	ignore := i.orIgnore || (i.conflict != nil && i.conflict.action.ignore)
	if ignore && p.IgnoreModifier == "" {
		switch p.Upsert {
		case UpsertOnConflict:
			if i.conflict == nil {
				i.conflict = &conflict{}
			}
			i.conflict.action.ignore = true
		case UpsertOnDuplicateKey:
			// The MySQL family always carries an IGNORE modifier.
		default:
			i.AddError(typeorm.NewUnsupportedUpsertError(i.Dialect()))
			return
		}
		ignore = false
	}
	i.WriteString("INSERT ")
	if ignore {
		i.WriteString(p.IgnoreModifier).Pad()
	}
	i.WriteString("INTO ")
	if i.schema != "" {
		i.Ident(i.schema).WriteByte('.')
	}
	i.Ident(i.table)

	storage := make([]string, len(cols))
	for n, c := range cols {
		storage[n] = c.StorageName()
	}
	allDefault := len(vals) == 1 && defaultsOnly(vals[0])
	if allDefault && p.EmptyInsert != EmptyColumnDefaults {
		i.writeOutput(returning)
		switch p.EmptyInsert {
		case EmptyValuesList:
			i.WriteString(" () VALUES ()")
		default:
			i.WriteString(" DEFAULT VALUES")
		}
		i.writeConflict(storage)
		i.writeReturning(returning)
		return
	}
	if len(cols) == 0 {
		// Nothing resolvable to insert, not even defaults.
		i.AddError(typeorm.NewMissingValuesError(i.table))
		return
	}
	i.WriteString(" (").IdentComma(storage...).WriteByte(')')
	i.writeOutput(returning)
	if len(vals) > 1 && !p.MultiRowValues {
		for n, row := range vals {
			if n > 0 {
				i.WriteString(" UNION ALL")
			}
			i.WriteString(" SELECT ")
			i.writeRow(row, true)
			if p.DualTable != "" {
				i.WriteString(" FROM " + p.DualTable)
			}
		}
	} else {
		i.WriteString(" VALUES ")
		for n, row := range vals {
			if n > 0 {
				i.Comma()
			}
			i.WriteByte('(')
			i.writeRow(row, false)
			i.WriteByte(')')
		}
	}
	i.writeConflict(storage)
	i.writeReturning(returning)
}

// writeRow emits one tuple. Inside a SELECT body the DEFAULT keyword is
// not available regardless of dialect support.
func (i *InsertBuilder) writeRow(row []value, selectBody bool) {
	for n, v := range row {
		if n > 0 {
			i.Comma()
		}
		i.writeValue(v, selectBody)
	}
}

func (i *InsertBuilder) writeValue(v value, selectBody bool) {
	p := i.Profile()
	switch {
	case v.useDef && p.DefaultKeyword && !selectBody:
		i.WriteString("DEFAULT")
	case v.useDef && v.col != nil && v.col.Default != "":
		i.WriteString(v.col.Default)
	case v.useDef:
		i.WriteString("NULL")
	case !v.param:
		i.WriteString(v.expr)
	case v.col != nil && v.col.Spatial:
		i.args = append(i.args, v.arg)
		ph := p.PlaceholderFor(len(i.args))
		switch {
		case v.col.SRID > 0 && p.SpatialFuncSRID != "":
			i.WriteString(fmt.Sprintf(p.SpatialFuncSRID, ph, v.col.SRID))
		case p.SpatialFunc != "":
			i.WriteString(fmt.Sprintf(p.SpatialFunc, ph))
		default:
			i.WriteString(ph)
		}
	default:
		i.Arg(v.arg)
	}
}

// writeOutput emits the OUTPUT clause for dialects that place returning
// columns before the VALUES body.
func (i *InsertBuilder) writeOutput(returning []string) {
	expr := i.exprReturning()
	if i.Profile().Returning != ReturningOutput || (len(returning) == 0 && expr == "") {
		return
	}
	i.WriteString(" OUTPUT ")
	if expr != "" {
		i.WriteString(expr)
		return
	}
	for n, col := range returning {
		if n > 0 {
			i.Comma()
		}
		i.WriteString("INSERTED.").Ident(col)
	}
}

// writeReturning emits the RETURNING clause for dialects that place it
// after the VALUES body.
func (i *InsertBuilder) writeReturning(returning []string) {
	expr := i.exprReturning()
	if i.Profile().Returning != ReturningClause || (len(returning) == 0 && expr == "") {
		return
	}
	i.WriteString(" RETURNING ")
	if expr != "" {
		i.WriteString(expr)
		return
	}
	i.IdentComma(returning...)
}

func (i *InsertBuilder) qualifiedTable() string {
	p := i.Profile()
	if i.schema != "" {
		return p.QuoteIdent(i.schema) + "." + p.QuoteIdent(i.table)
	}
	return p.QuoteIdent(i.table)
}

func defaultsOnly(row []value) bool {
	for _, v := range row {
		if !v.useDef {
			return false
		}
	}
	return true
}
