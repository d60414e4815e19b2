package sql

import (
	"strconv"

	"github.com/mesinger/typeorm/dialect"
)

// UpsertStyle describes the conflict-resolution syntax an engine accepts.
type UpsertStyle uint8

// Upsert styles.
const (
	// UpsertNone rejects any insert-or-update request.
	UpsertNone UpsertStyle = iota
	// UpsertOnConflict uses `ON CONFLICT ... DO NOTHING / DO UPDATE SET`.
	UpsertOnConflict
	// UpsertOnDuplicateKey uses `ON DUPLICATE KEY UPDATE`.
	UpsertOnDuplicateKey
)

// String returns the string representation of an upsert style.
func (u UpsertStyle) String() string {
	switch u {
	case UpsertOnConflict:
		return "on-conflict"
	case UpsertOnDuplicateKey:
		return "on-duplicate-key"
	default:
		return "none"
	}
}

// ReturningStyle describes how an engine reports inserted column values.
type ReturningStyle uint8

// Returning styles.
const (
	// ReturningNone means the engine has no way to report inserted values.
	ReturningNone ReturningStyle = iota
	// ReturningClause appends `RETURNING ...` after the VALUES body.
	ReturningClause
	// ReturningOutput places `OUTPUT INSERTED....` before the VALUES body.
	ReturningOutput
)

// EmptyInsert describes the idiom for inserting a row built entirely from
// column defaults.
type EmptyInsert uint8

// Empty-insert idioms.
const (
	// EmptyDefaultValues emits `INSERT INTO t DEFAULT VALUES`.
	EmptyDefaultValues EmptyInsert = iota
	// EmptyValuesList emits `INSERT INTO t () VALUES ()`.
	EmptyValuesList
	// EmptyColumnDefaults lists every insertable column with its default.
	EmptyColumnDefaults
)

// PlaceholderStyle describes the positional parameter marker of an engine.
type PlaceholderStyle uint8

// Placeholder styles.
const (
	// PlaceholderQuestion emits `?`.
	PlaceholderQuestion PlaceholderStyle = iota
	// PlaceholderDollar emits `$1`, `$2`, ...
	PlaceholderDollar
	// PlaceholderColon emits `:1`, `:2`, ...
	PlaceholderColon
	// PlaceholderAt emits `@p1`, `@p2`, ...
	PlaceholderAt
)

// QuoteStyle describes the identifier quoting characters of an engine.
type QuoteStyle uint8

// Quote styles.
const (
	// QuoteDouble quotes identifiers with double quotes.
	QuoteDouble QuoteStyle = iota
	// QuoteBacktick quotes identifiers with backticks.
	QuoteBacktick
	// QuoteBracket quotes identifiers with square brackets.
	QuoteBracket
)

// A Profile is the capability descriptor of one database engine. Profiles
// are constructed once at package init and never mutated; every syntax
// decision in the insert compiler goes through a profile lookup instead of
// per-call-site dialect conditionals.
type Profile struct {
	// Dialect is the engine identifier this profile describes.
	Dialect string
	// Upsert is the conflict-resolution syntax of the engine.
	Upsert UpsertStyle
	// Returning is the inserted-values reporting syntax of the engine.
	Returning ReturningStyle
	// MultiRowReturning reports whether the returning clause may be used
	// with more than one inserted row. When false, a multi-row insert
	// silently proceeds without the clause.
	MultiRowReturning bool
	// MultiRowValues reports whether the engine accepts a multi-tuple
	// VALUES body. When false, bulk inserts compile to a chain of
	// `SELECT ... FROM <DualTable>` joined with UNION ALL.
	MultiRowValues bool
	// DualTable is the one-row dummy table used by the UNION ALL form.
	DualTable string
	// EmptyInsert is the idiom for inserting a row of pure defaults.
	EmptyInsert EmptyInsert
	// DefaultKeyword reports whether the DEFAULT keyword is accepted inside
	// a VALUES tuple. Engines without it (and SELECT-based bodies on any
	// engine) fall back to the declared column default or NULL.
	DefaultKeyword bool
	// IgnoreModifier is the statement modifier implementing the ignore
	// policy ("IGNORE", "OR IGNORE"), or empty when the engine has none.
	IgnoreModifier string
	// IdentityInsert reports whether explicitly supplied values for an
	// auto-increment column require wrapping the statement with a
	// SET IDENTITY_INSERT toggle.
	IdentityInsert bool
	// NativeUUID reports whether the engine can generate UUID values
	// itself. When false, UUID-generated columns with no supplied value
	// receive an application-generated UUID.
	NativeUUID bool
	// SpatialFunc is a format string wrapping a spatial parameter
	// placeholder, e.g. "ST_GeomFromGeoJSON(%s)". Empty when the engine
	// has no spatial support.
	SpatialFunc string
	// SpatialFuncSRID is the SRID-carrying variant of SpatialFunc with a
	// %s placeholder verb followed by a %d SRID verb.
	SpatialFuncSRID string
	// Placeholder is the positional parameter marker style.
	Placeholder PlaceholderStyle
	// Quote is the identifier quoting style.
	Quote QuoteStyle
	// KeepIncrementColumn reports whether implicit column selection must
	// list auto-increment primary keys (engines without a pure
	// DEFAULT VALUES path for them).
	KeepIncrementColumn bool
}

// PlaceholderFor returns the parameter marker for the n-th (1-based) argument.
func (p *Profile) PlaceholderFor(n int) string {
	switch p.Placeholder {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(n)
	case PlaceholderColon:
		return ":" + strconv.Itoa(n)
	case PlaceholderAt:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// QuoteIdent returns the identifier quoted in the engine's style.
func (p *Profile) QuoteIdent(ident string) string {
	switch p.Quote {
	case QuoteBacktick:
		return "`" + ident + "`"
	case QuoteBracket:
		return "[" + ident + "]"
	default:
		return `"` + ident + `"`
	}
}

var (
	postgresProfile = &Profile{
		Dialect:           dialect.Postgres,
		Upsert:            UpsertOnConflict,
		Returning:         ReturningClause,
		MultiRowReturning: true,
		MultiRowValues:    true,
		EmptyInsert:       EmptyDefaultValues,
		DefaultKeyword:    true,
		NativeUUID:        true,
		SpatialFunc:       "ST_GeomFromGeoJSON(%s)",
		SpatialFuncSRID:   "ST_SetSRID(ST_GeomFromGeoJSON(%s), %d)",
		Placeholder:       PlaceholderDollar,
		Quote:             QuoteDouble,
	}

	mysqlProfile = &Profile{
		Dialect:         dialect.MySQL,
		Upsert:          UpsertOnDuplicateKey,
		Returning:       ReturningNone,
		MultiRowValues:  true,
		EmptyInsert:     EmptyValuesList,
		DefaultKeyword:  true,
		IgnoreModifier:  "IGNORE",
		SpatialFunc:     "ST_GeomFromGeoJSON(%s)",
		SpatialFuncSRID: "ST_GeomFromGeoJSON(%s, 1, %d)",
		Placeholder:     PlaceholderQuestion,
		Quote:           QuoteBacktick,
	}

	profiles = map[string]*Profile{
		dialect.Postgres: postgresProfile,
		dialect.CockroachDB: clone(postgresProfile, func(p *Profile) {
			p.Dialect = dialect.CockroachDB
		}),
		dialect.AuroraPostgres: clone(postgresProfile, func(p *Profile) {
			p.Dialect = dialect.AuroraPostgres
		}),
		dialect.MySQL: mysqlProfile,
		dialect.MariaDB: clone(mysqlProfile, func(p *Profile) {
			p.Dialect = dialect.MariaDB
			p.Returning = ReturningClause
			p.MultiRowReturning = true
			p.SpatialFunc = "ST_GeomFromText(%s)"
			p.SpatialFuncSRID = "ST_GeomFromText(%s, %d)"
		}),
		dialect.AuroraMySQL: clone(mysqlProfile, func(p *Profile) {
			p.Dialect = dialect.AuroraMySQL
		}),
		dialect.SQLite: {
			Dialect:        dialect.SQLite,
			Upsert:         UpsertOnConflict,
			Returning:      ReturningNone,
			MultiRowValues: true,
			EmptyInsert:    EmptyDefaultValues,
			IgnoreModifier: "OR IGNORE",
			Placeholder:    PlaceholderQuestion,
			Quote:          QuoteDouble,
		},
		dialect.SQLServer: {
			Dialect:           dialect.SQLServer,
			Upsert:            UpsertNone,
			Returning:         ReturningOutput,
			MultiRowReturning: true,
			MultiRowValues:    true,
			EmptyInsert:       EmptyDefaultValues,
			DefaultKeyword:    true,
			IdentityInsert:    true,
			NativeUUID:        true,
			SpatialFunc:       "geometry::STGeomFromText(%s, 0)",
			SpatialFuncSRID:   "geometry::STGeomFromText(%s, %d)",
			Placeholder:       PlaceholderAt,
			Quote:             QuoteBracket,
		},
		dialect.Oracle: {
			Dialect:             dialect.Oracle,
			Upsert:              UpsertNone,
			Returning:           ReturningClause,
			MultiRowReturning:   false,
			MultiRowValues:      false,
			DualTable:           "DUAL",
			EmptyInsert:         EmptyColumnDefaults,
			DefaultKeyword:      true,
			NativeUUID:          true,
			SpatialFunc:         "SDO_GEOMETRY(%s)",
			SpatialFuncSRID:     "SDO_GEOMETRY(%s, %d)",
			Placeholder:         PlaceholderColon,
			Quote:               QuoteDouble,
			KeepIncrementColumn: true,
		},
		dialect.HANA: {
			Dialect:             dialect.HANA,
			Upsert:              UpsertNone,
			Returning:           ReturningNone,
			MultiRowValues:      false,
			DualTable:           "DUMMY",
			EmptyInsert:         EmptyColumnDefaults,
			DefaultKeyword:      true,
			SpatialFunc:         "ST_GeomFromText(%s)",
			SpatialFuncSRID:     "ST_GeomFromText(%s, %d)",
			Placeholder:         PlaceholderQuestion,
			Quote:               QuoteDouble,
			KeepIncrementColumn: true,
		},
		dialect.Spanner: {
			Dialect:        dialect.Spanner,
			Upsert:         UpsertNone,
			Returning:      ReturningNone,
			MultiRowValues: true,
			EmptyInsert:    EmptyColumnDefaults,
			DefaultKeyword: true,
			Placeholder:    PlaceholderQuestion,
			Quote:          QuoteBacktick,
		},
	}

	// ansiProfile is the fallback for unknown dialects.
	ansiProfile = &Profile{
		Dialect:        "",
		Upsert:         UpsertNone,
		Returning:      ReturningNone,
		MultiRowValues: true,
		EmptyInsert:    EmptyDefaultValues,
		DefaultKeyword: true,
		Placeholder:    PlaceholderQuestion,
		Quote:          QuoteDouble,
	}
)

func clone(p *Profile, edit func(*Profile)) *Profile {
	c := *p
	edit(&c)
	return &c
}

// DialectProfile returns the capability profile of the given dialect.
// Unknown dialects map to a conservative ANSI profile.
func DialectProfile(name string) *Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	c := *ansiProfile
	c.Dialect = name
	return &c
}
