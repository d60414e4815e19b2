// Package dialect provides the database dialect abstraction.
//
// It defines the interfaces and engine identifiers used for database-specific
// operations, allowing one INSERT description to compile to correct SQL for
// every supported backend.
//
// # Supported Dialects
//
// Each engine is identified by a constant string:
//
//	dialect.Postgres       = "postgres"
//	dialect.CockroachDB    = "cockroachdb"
//	dialect.AuroraPostgres = "aurora-postgres"
//	dialect.MySQL          = "mysql"
//	dialect.MariaDB        = "mariadb"
//	dialect.AuroraMySQL    = "aurora-mysql"
//	dialect.SQLite         = "sqlite"
//	dialect.SQLServer      = "sqlserver"
//	dialect.Oracle         = "oracle"
//	dialect.HANA           = "hana"
//	dialect.Spanner        = "spanner"
//
// Capability differences between engines (upsert style, RETURNING/OUTPUT
// support, bulk-insert syntax, identity-insert toggles, spatial functions)
// are described by the profile table in the dialect/sql package.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// The Tx interface carries the same Exec/Query pair plus Commit and Rollback.
// The ExecQuerier interface is the subset implemented by both.
//
// # Usage
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// Wrap any driver with Debug to log outgoing statements through log/slog:
//
//	drv := dialect.Debug(db)
package dialect
