package sql

import (
	"errors"
	"strings"
)

// Builder is the base SQL text builder. It accumulates the statement text
// and, in parallel, the positional parameter array; the two always stay in
// placeholder-occurrence order.
type Builder struct {
	sb      strings.Builder
	dialect string
	profile *Profile
	args    []any
	errs    []error
}

// SetDialect sets the builder dialect. It's used for garnering dialect
// specific output.
func (b *Builder) SetDialect(dialect string) {
	b.dialect = dialect
	b.profile = DialectProfile(dialect)
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string {
	return b.dialect
}

// Profile returns the capability profile of the builder dialect.
func (b *Builder) Profile() *Profile {
	if b.profile == nil {
		b.profile = DialectProfile(b.dialect)
	}
	return b.profile
}

// WriteString appends the string to the statement text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends the byte to the statement text.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Pad appends a single space.
func (b *Builder) Pad() *Builder {
	return b.WriteByte(' ')
}

// Comma appends a comma-space separator.
func (b *Builder) Comma() *Builder {
	return b.WriteString(", ")
}

// Ident appends the given string as a quoted identifier. Qualified names
// are quoted part by part; strings that already contain quoting characters,
// parentheses or the star selector are written as-is.
func (b *Builder) Ident(s string) *Builder {
	switch {
	case s == "" || s == "*" || strings.ContainsAny(s, "()`\"[]"):
		b.WriteString(s)
	case strings.Contains(s, "."):
		parts := strings.Split(s, ".")
		for i, p := range parts {
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(b.Profile().QuoteIdent(p))
		}
	default:
		b.WriteString(b.Profile().QuoteIdent(s))
	}
	return b
}

// IdentComma calls Ident on all arguments and adds a comma between them.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.Comma()
		}
		b.Ident(s[i])
	}
	return b
}

// Arg appends the placeholder for the argument to the statement text and
// the argument itself to the parameter array.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	b.WriteString(b.Profile().PlaceholderFor(len(b.args)))
	return b
}

// Args appends a comma-separated list of placeholders for the arguments.
func (b *Builder) Args(vs ...any) *Builder {
	for i := range vs {
		if i > 0 {
			b.Comma()
		}
		b.Arg(vs[i])
	}
	return b
}

// Wrap gets a callback, and wraps its result with parentheses.
func (b *Builder) Wrap(f func(*Builder)) *Builder {
	b.WriteByte('(')
	f(b)
	return b.WriteByte(')')
}

// AddError appends an error to the builder errors.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors collected during building, joined.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// String returns the accumulated statement text.
func (b *Builder) String() string {
	return b.sb.String()
}

// DialectBuilder prefixes all root builders with the dialect name.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
//
//	sql.Dialect(dialect.Postgres).
//		Insert("users")
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Insert creates an InsertBuilder for the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	b := Insert(table)
	b.SetDialect(d.dialect)
	return b
}
