// Package sqlgraph provides the execution layer on top of the insert
// builder: it compiles a creation spec into dialect-correct statements,
// runs them under a transaction, and merges database-generated values
// back into the caller's records.
package sqlgraph

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mesinger/typeorm"
	"github.com/mesinger/typeorm/dialect"
	"github.com/mesinger/typeorm/dialect/sql"
	"github.com/mesinger/typeorm/schema/field"
)

type (
	// CreateSpec holds the information for creating rows in the graph.
	CreateSpec struct {
		Table  string
		Schema string
		// Columns is the table's column metadata. When empty, the spec
		// runs in raw-table mode and columns derive from the rows.
		Columns []*sql.ColumnSpec
		// Select restricts the insert to an explicit column list.
		Select []string
		// Rows holds one value set per row. An empty sequence is a
		// valid, zero-effect creation.
		Rows          []sql.ValueSet
		Discriminator any
		// Conflict holds the upsert configuration.
		Conflict []sql.ConflictOption
		OrIgnore bool
		// Returning lists columns to report back, with ReturningExpr
		// taking precedence when set.
		Returning     []string
		ReturningExpr string
		// UpdateEntity merges generated keys, defaults and versions back
		// into Rows after execution.
		UpdateEntity bool
		// NoTx disables the implicit transaction for single-statement
		// inserts on drivers without one.
		NoTx  bool
		Hooks *Hooks
		// Log receives rollback failures. Defaults to slog.Default.
		Log *slog.Logger
	}

	// Hooks are callbacks invoked around the insert, once per row.
	// Callbacks for different rows run concurrently; an error from any
	// of them aborts the creation.
	Hooks struct {
		BeforeInsert func(ctx context.Context, table string, row sql.ValueSet) error
		AfterInsert  func(ctx context.Context, table string, row sql.ValueSet) error
	}

	// CreateResult reports the outcome of a creation.
	CreateResult struct {
		// LastInsertID is the database-assigned key of the first
		// inserted row, when the driver reports one.
		LastInsertID int64
		RowsAffected int64
		// Returned holds the rows reported by a RETURNING or OUTPUT
		// clause, one map per returned row.
		Returned []map[string]any
		// Generated holds application-generated values (UUID keys) by
		// row index.
		Generated map[int]sql.ValueSet
	}
)

// CreateNode applies the CreateSpec on the database: compiles it for the
// driver's dialect, executes the statements in one transaction, and
// returns the creation outcome. Pre-existing transactions on drv are
// joined, not finalized.
//
// Before-insert hooks and compilation both run before a transaction is
// opened, so a hook veto or a configuration error never touches the
// database and never leaves a transaction behind.
func CreateNode(ctx context.Context, drv dialect.Driver, spec *CreateSpec) (*CreateResult, error) {
	res := &CreateResult{}
	if len(spec.Rows) == 0 {
		return res, nil
	}
	if err := spec.runHooks(ctx, hookBefore); err != nil {
		return nil, err
	}
	builder := spec.builder(drv.Dialect())
	stmt, err := builder.Compile()
	if err != nil {
		return nil, typeorm.NewMutationError(spec.Table, "create", err)
	}
	res.Generated = builder.Generated()
	tx, ownTx, err := spec.tx(ctx, drv)
	if err != nil {
		return nil, err
	}
	if err := spec.exec(ctx, tx, stmt, res); err != nil {
		if ownTx {
			spec.rollback(ctx, tx)
		}
		if IsConstraintError(err) {
			err = typeorm.NewConstraintError(err.Error(), err)
		}
		return nil, typeorm.NewMutationError(spec.Table, "create", err)
	}
	if spec.UpdateEntity {
		spec.mergeBack(res, drv.Dialect())
	}
	if err := spec.runHooks(ctx, hookAfter); err != nil {
		if ownTx {
			spec.rollback(ctx, tx)
		}
		return nil, err
	}
	if ownTx {
		if err := tx.Commit(); err != nil {
			return nil, typeorm.NewMutationError(spec.Table, "create", err)
		}
	}
	return res, nil
}

// builder translates the spec into a configured insert builder.
func (spec *CreateSpec) builder(dialectName string) *sql.InsertBuilder {
	b := sql.Dialect(dialectName).Insert(spec.Table)
	if spec.Schema != "" {
		b.Schema(spec.Schema)
	}
	if len(spec.Columns) > 0 {
		b.Metadata(spec.Columns...)
	}
	if len(spec.Select) > 0 {
		b.Columns(spec.Select...)
	}
	if spec.Discriminator != nil {
		b.Discriminator(spec.Discriminator)
	}
	b.Rows(spec.Rows...)
	if spec.OrIgnore {
		b.OrIgnore()
	}
	if len(spec.Conflict) > 0 {
		b.OnConflict(spec.Conflict...)
	}
	if len(spec.Returning) > 0 {
		b.Returning(spec.Returning...)
	}
	if spec.ReturningExpr != "" {
		b.ReturningExpr(spec.ReturningExpr)
	}
	b.UpdateEntity(spec.UpdateEntity)
	return b
}

// rollback rolls the owned transaction back. The trigger error is already
// on its way to the caller, so a rollback failure is only logged.
func (spec *CreateSpec) rollback(ctx context.Context, tx dialect.Tx) {
	if err := tx.Rollback(); err != nil {
		spec.logger().ErrorContext(ctx, "rollback failed",
			"table", spec.Table, "error", typeorm.NewRollbackError(err))
	}
}

// tx resolves the transactional scope: a caller-provided transaction is
// joined as-is, otherwise a new one is started and owned here. When NoTx
// is set, statements run directly on the driver.
func (spec *CreateSpec) tx(ctx context.Context, drv dialect.Driver) (dialect.Tx, bool, error) {
	if tx, ok := drv.(dialect.Tx); ok {
		return tx, false, nil
	}
	if spec.NoTx {
		return dialect.NopTx(drv), false, nil
	}
	tx, err := drv.Tx(ctx)
	if err != nil {
		return nil, false, err
	}
	return tx, true, nil
}

// exec runs the compiled fragments in order. The main fragment collects
// either the returned rows or the driver result; surrounding fragments
// (identity-insert toggles) run as plain statements.
func (spec *CreateSpec) exec(ctx context.Context, tx dialect.ExecQuerier, stmt *sql.CompiledStatement, res *CreateResult) error {
	for n, frag := range stmt.Fragments {
		if n != stmt.Main {
			if err := tx.Exec(ctx, frag, []any{}, nil); err != nil {
				return err
			}
			continue
		}
		if stmt.HasReturning() {
			rows := &sql.Rows{}
			if err := tx.Query(ctx, frag, stmt.Args, rows); err != nil {
				return err
			}
			if err := scanReturned(rows, stmt.Returning, res); err != nil {
				return err
			}
			continue
		}
		var dbres sql.Result
		if err := tx.Exec(ctx, frag, stmt.Args, &dbres); err != nil {
			return err
		}
		if dbres != nil {
			if id, err := dbres.LastInsertId(); err == nil {
				res.LastInsertID = id
			}
			if affected, err := dbres.RowsAffected(); err == nil {
				res.RowsAffected = affected
			}
		}
	}
	return nil
}

// scanReturned reads the RETURNING/OUTPUT rows into the result, keyed by
// the compiled returning column order. For raw returning expressions the
// column names are discovered from the result set.
func scanReturned(rows *sql.Rows, columns []string, res *CreateResult) error {
	defer rows.Close()
	if len(columns) == 0 {
		discovered, err := rows.Columns()
		if err != nil {
			return err
		}
		columns = discovered
	}
	for rows.Next() {
		dest := make([]any, len(columns))
		for n := range dest {
			dest[n] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}
		row := make(map[string]any, len(columns))
		for n, col := range columns {
			row[col] = *dest[n].(*any)
		}
		res.Returned = append(res.Returned, row)
		res.RowsAffected++
	}
	return rows.Err()
}

// mergeBack merges generated and returned values into the caller's rows.
// Returned rows align with input rows positionally, which holds for plain
// multi-row inserts on returning-capable dialects.
func (spec *CreateSpec) mergeBack(res *CreateResult, dialectName string) {
	for idx, vs := range res.Generated {
		if idx >= len(spec.Rows) {
			continue
		}
		for k, v := range vs {
			spec.Rows[idx][k] = v
		}
	}
	for idx, row := range res.Returned {
		if idx >= len(spec.Rows) {
			break
		}
		for k, v := range row {
			spec.Rows[idx][spec.logicalName(k)] = v
		}
	}
	if len(res.Returned) == 0 && res.LastInsertID != 0 {
		spec.assignKeys(res.LastInsertID, dialectName)
	}
}

// assignKeys derives auto-increment keys from the driver-reported last
// insert id for rows that did not supply one. The MySQL family reports the
// id of the first inserted row and allocates sequentially, so multi-row
// offsets only apply there.
func (spec *CreateSpec) assignKeys(firstID int64, dialectName string) {
	var pk *sql.ColumnSpec
	for _, c := range spec.Columns {
		if c.Primary && c.Generation == field.GenerateIncrement {
			pk = c
			break
		}
	}
	if pk == nil {
		return
	}
	sequential := false
	switch dialectName {
	case dialect.MySQL, dialect.MariaDB, dialect.AuroraMySQL:
		sequential = true
	}
	if !sequential && len(spec.Rows) > 1 {
		return
	}
	for idx, vs := range spec.Rows {
		if _, ok := vs[pk.Name]; ok {
			continue
		}
		vs[pk.Name] = firstID + int64(idx)
	}
}

// logicalName maps a storage column name back to its logical name.
func (spec *CreateSpec) logicalName(storage string) string {
	for _, c := range spec.Columns {
		if c.StorageName() == storage {
			return c.Name
		}
	}
	return storage
}

type hookPhase int

const (
	hookBefore hookPhase = iota
	hookAfter
)

// runHooks broadcasts the phase callback to every row concurrently.
// Failures from different rows are collected into one AggregateError; the
// shared context is canceled on the first failure, so later rows may not
// have run at all.
func (spec *CreateSpec) runHooks(ctx context.Context, phase hookPhase) error {
	if spec.Hooks == nil {
		return nil
	}
	fn := spec.Hooks.BeforeInsert
	if phase == hookAfter {
		fn = spec.Hooks.AfterInsert
	}
	if fn == nil {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	errs := make([]error, len(spec.Rows))
	for idx, row := range spec.Rows {
		idx, row := idx, row
		g.Go(func() error {
			if err := fn(ctx, spec.Table, row); err != nil {
				errs[idx] = fmt.Errorf("sqlgraph: %s hook: %w", phase, err)
				return errs[idx]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return typeorm.NewAggregateError(errs...)
	}
	return nil
}

func (p hookPhase) String() string {
	if p == hookAfter {
		return "after-insert"
	}
	return "before-insert"
}

func (spec *CreateSpec) logger() *slog.Logger {
	if spec.Log != nil {
		return spec.Log
	}
	return slog.Default()
}
