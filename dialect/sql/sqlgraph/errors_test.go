package sqlgraph

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/mesinger/typeorm"
)

func TestIsUniqueConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"PgxCode", &pgconn.PgError{Code: "23505"}, true},
		{"PqCode", &pq.Error{Code: "23505"}, true},
		{"MySQLNumber", &mysql.MySQLError{Number: 1062}, true},
		{"Wrapped", fmt.Errorf("exec: %w", &mysql.MySQLError{Number: 1062}), true},
		{"MySQLString", errors.New("Error 1062: Duplicate entry 'a' for key 'users.name'"), true},
		{"PostgresString", errors.New(`pq: duplicate key value violates unique constraint "users_name_key"`), true},
		{"SQLiteString", errors.New("UNIQUE constraint failed: users.name"), true},
		{"SQLServerString", errors.New("mssql: Violation of UNIQUE KEY constraint 'UQ_users_name'"), true},
		{"OracleString", errors.New("ORA-00001: unique constraint (APP.USERS_PK) violated"), true},
		{"OtherPgCode", &pgconn.PgError{Code: "23503"}, false},
		{"Unrelated", errors.New("connection refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUniqueConstraintError(tt.err))
		})
	}
}

func TestIsForeignKeyConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"PgxCode", &pgconn.PgError{Code: "23503"}, true},
		{"PqCode", &pq.Error{Code: "23503"}, true},
		{"MySQLParent", &mysql.MySQLError{Number: 1451}, true},
		{"MySQLChild", &mysql.MySQLError{Number: 1452}, true},
		{"SQLiteString", errors.New("FOREIGN KEY constraint failed"), true},
		{"UniqueCode", &pgconn.PgError{Code: "23505"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsForeignKeyConstraintError(tt.err))
		})
	}
}

func TestIsCheckConstraintError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Nil", nil, false},
		{"PgxCode", &pgconn.PgError{Code: "23514"}, true},
		{"MySQLNumber", &mysql.MySQLError{Number: 3819}, true},
		{"SQLiteString", errors.New("CHECK constraint failed: rank_positive"), true},
		{"UniqueCode", &pgconn.PgError{Code: "23505"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCheckConstraintError(tt.err))
		})
	}
}

func TestIsConstraintError(t *testing.T) {
	assert.True(t, IsConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsConstraintError(&mysql.MySQLError{Number: 1452}))
	assert.True(t, IsConstraintError(typeorm.NewConstraintError("duplicate", nil)))
	assert.False(t, IsConstraintError(errors.New("syntax error")))
	assert.False(t, IsConstraintError(nil))
}
