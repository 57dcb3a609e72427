package jsrt

//go:generate go tool stringer -type=ValueType -linecomment -output=valuetype_string.go

// Value is a handle to a value owned by an Env. The zero Value is never
// handed out and is returned alongside errors.
type Value uint32

// ValueType is the dynamic type of a Value, mirroring JavaScript's typeof
// with arrays and null split out.
type ValueType int

const (
	TypeInvalid   ValueType = iota // invalid
	TypeUndefined                  // undefined
	TypeNull                       // null
	TypeBoolean                    // boolean
	TypeNumber                     // number
	TypeString                     // string
	TypeObject                     // object
	TypeArray                      // array
)

// slot is the storage behind a single handle.
type slot struct {
	typ ValueType
	b   bool
	n   float64
	s   string
	obj *object
	arr []Value
}
