package field

// A Type represents a field type.
type Type uint8

// List of field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeUUID
	TypeBytes
	TypeEnum
	TypeString
	TypeOther
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeGeometry
	endTypes
)

var typeNames = [...]string{
	TypeInvalid:  "invalid",
	TypeBool:     "bool",
	TypeTime:     "time.Time",
	TypeJSON:     "json.RawMessage",
	TypeUUID:     "[16]byte",
	TypeBytes:    "[]byte",
	TypeEnum:     "string",
	TypeString:   "string",
	TypeOther:    "other",
	TypeInt8:     "int8",
	TypeInt16:    "int16",
	TypeInt32:    "int32",
	TypeInt:      "int",
	TypeInt64:    "int64",
	TypeUint8:    "uint8",
	TypeUint16:   "uint16",
	TypeUint32:   "uint32",
	TypeUint:     "uint",
	TypeUint64:   "uint64",
	TypeFloat32:  "float32",
	TypeFloat64:  "float64",
	TypeGeometry: "geometry",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type if known type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t >= TypeInt8 && t <= TypeFloat64
}

// Integer reports if the given type is an integral type.
func (t Type) Integer() bool {
	return t >= TypeInt8 && t <= TypeUint64
}

// A GenerationStrategy describes how a database column obtains its value
// when none is supplied on insert.
type GenerationStrategy uint8

// List of generation strategies.
const (
	// GenerateNone means the column value is never generated.
	GenerateNone GenerationStrategy = iota
	// GenerateIncrement means the engine assigns the next sequence value.
	GenerateIncrement
	// GenerateUUID means the column holds a generated UUID. Engines without
	// native UUID generation receive an application-generated value instead.
	GenerateUUID
)

// String returns the string representation of a generation strategy.
func (g GenerationStrategy) String() string {
	switch g {
	case GenerateIncrement:
		return "increment"
	case GenerateUUID:
		return "uuid"
	default:
		return "none"
	}
}
