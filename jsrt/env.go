package jsrt

import (
	"math"

	"github.com/charmbracelet/log"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Handles reserved by every Env.
const (
	handleUndefined Value = 1
	handleNull      Value = 2
	handleTrue      Value = 3
	handleFalse     Value = 4

	reservedHandles = 5
)

// Stats counts the heap operations an Env has performed.
type Stats struct {
	Handles      int // live handles, reserved ones excluded
	Objects      int
	Arrays       int
	PropertySets int
	ElementSets  int
}

// Option configures an Env.
type Option func(e *Env)

// WithHandleLimit caps the number of handles the Env may allocate. Any
// allocation past the limit fails with KindResourceExhausted. Zero means no
// limit.
func WithHandleLimit(limit int) Option {
	return func(e *Env) {
		e.limit = limit
	}
}

// WithLogger traces handle allocation and property/element writes at debug
// level.
func WithLogger(l *log.Logger) Option {
	return func(e *Env) {
		e.log = l
	}
}

// Env is a value heap. It is not safe for concurrent use; like a JavaScript
// isolate, each goroutine needs its own.
type Env struct {
	slots []slot
	limit int
	stats Stats
	log   *log.Logger
}

// NewEnv creates an empty Env.
func NewEnv(opts ...Option) *Env {
	e := &Env{
		slots: make([]slot, reservedHandles, 64),
	}

	e.slots[handleUndefined] = slot{typ: TypeUndefined}
	e.slots[handleNull] = slot{typ: TypeNull}
	e.slots[handleTrue] = slot{typ: TypeBoolean, b: true}
	e.slots[handleFalse] = slot{typ: TypeBoolean, b: false}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Stats returns a snapshot of the operation counters.
func (e *Env) Stats() Stats {
	return e.stats
}

// Undefined returns the undefined value.
func (e *Env) Undefined() Value {
	return handleUndefined
}

// Null returns the null value.
func (e *Env) Null() Value {
	return handleNull
}

// CreateBool returns the boolean value b.
func (e *Env) CreateBool(b bool) Value {
	if b {
		return handleTrue
	}

	return handleFalse
}

// CreateDouble allocates a number.
func (e *Env) CreateDouble(f float64) (Value, error) {
	return e.alloc(slot{typ: TypeNumber, n: f})
}

// CreateInt64 allocates a number. Integers outside ±2^53 lose precision the
// same way they do in JavaScript.
func (e *Env) CreateInt64(i int64) (Value, error) {
	return e.alloc(slot{typ: TypeNumber, n: float64(i)})
}

// CreateUint64 allocates a number.
func (e *Env) CreateUint64(u uint64) (Value, error) {
	return e.alloc(slot{typ: TypeNumber, n: float64(u)})
}

// CreateString allocates a string.
func (e *Env) CreateString(s string) (Value, error) {
	return e.alloc(slot{typ: TypeString, s: s})
}

// CreateObject allocates an empty object.
func (e *Env) CreateObject() (Value, error) {
	v, err := e.alloc(slot{typ: TypeObject, obj: &object{props: orderedmap.New[string, Value]()}})
	if err != nil {
		return 0, err
	}

	e.stats.Objects++

	return v, nil
}

// CreateArrayWithLen allocates an array of exactly n undefined elements.
// Arrays never grow: SetElement outside [0, n) fails.
func (e *Env) CreateArrayWithLen(n int) (Value, error) {
	if n < 0 {
		return 0, newError(KindOutOfRange, "negative array length %d", n)
	}

	elems := make([]Value, n)
	for i := range elems {
		elems[i] = handleUndefined
	}

	v, err := e.alloc(slot{typ: TypeArray, arr: elems})
	if err != nil {
		return 0, err
	}

	e.stats.Arrays++

	return v, nil
}

// SetElement stores elem at index idx of arr.
func (e *Env) SetElement(arr, elem Value, idx int) error {
	s, err := e.slotOf(arr)
	if err != nil {
		return err
	}

	if s.typ != TypeArray {
		return newError(KindWrongType, "set element on %s", s.typ)
	}

	if _, err := e.slotOf(elem); err != nil {
		return err
	}

	if idx < 0 || idx >= len(s.arr) {
		return newError(KindOutOfRange, "index %d out of range [0, %d)", idx, len(s.arr))
	}

	s.arr[idx] = elem
	e.stats.ElementSets++

	if e.log != nil {
		e.log.Debug("set element", "array", arr, "index", idx, "value", elem)
	}

	return nil
}

// SetNamedProperty stores val under key on obj. Setting an existing key
// replaces the value and keeps the key's original position.
func (e *Env) SetNamedProperty(obj Value, key string, val Value) error {
	s, err := e.slotOf(obj)
	if err != nil {
		return err
	}

	if s.typ != TypeObject {
		return newError(KindWrongType, "set property %q on %s", key, s.typ)
	}

	if _, err := e.slotOf(val); err != nil {
		return err
	}

	s.obj.props.Set(key, val)
	e.stats.PropertySets++

	if e.log != nil {
		e.log.Debug("set property", "object", obj, "key", key, "value", val)
	}

	return nil
}

// TypeOf returns the dynamic type of v, or TypeInvalid for a handle this
// Env did not produce.
func (e *Env) TypeOf(v Value) ValueType {
	s, err := e.slotOf(v)
	if err != nil {
		return TypeInvalid
	}

	return s.typ
}

// ArrayLen returns the length of the array arr.
func (e *Env) ArrayLen(arr Value) (int, error) {
	s, err := e.slotOf(arr)
	if err != nil {
		return 0, err
	}

	if s.typ != TypeArray {
		return 0, newError(KindWrongType, "length of %s", s.typ)
	}

	return len(s.arr), nil
}

// PropertyNames returns the keys of obj in insertion order.
func (e *Env) PropertyNames(obj Value) ([]string, error) {
	s, err := e.slotOf(obj)
	if err != nil {
		return nil, err
	}

	if s.typ != TypeObject {
		return nil, newError(KindWrongType, "property names of %s", s.typ)
	}

	names := make([]string, 0, s.obj.props.Len())
	for pair := s.obj.props.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}

	return names, nil
}

func (e *Env) alloc(s slot) (Value, error) {
	if e.limit > 0 && e.stats.Handles >= e.limit {
		return 0, newError(KindResourceExhausted, "handle limit %d reached", e.limit)
	}

	if uint64(len(e.slots)) >= math.MaxUint32 {
		return 0, newError(KindResourceExhausted, "handle space exhausted")
	}

	e.slots = append(e.slots, s)
	e.stats.Handles++

	v := Value(len(e.slots) - 1)
	if e.log != nil {
		e.log.Debug("alloc", "handle", v, "type", s.typ)
	}

	return v, nil
}

func (e *Env) slotOf(v Value) (*slot, error) {
	if v == 0 || int(v) >= len(e.slots) {
		return nil, newError(KindInvalidHandle, "handle %d", v)
	}

	return &e.slots[v], nil
}

type object struct {
	props *orderedmap.OrderedMap[string, Value]
}
