package jsrt

// Object builds an object value. Properties are set through the builder and
// the object is handed out as a Value by TryToJS; after that the builder
// rejects further writes.
type Object struct {
	env       *Env
	handle    Value
	finalized bool
}

// NewObject binds the object handle to env. handle is normally the result
// of env.CreateObject.
func NewObject(env *Env, handle Value) *Object {
	return &Object{env: env, handle: handle}
}

// SetProperty stores val under key.
func (o *Object) SetProperty(key string, val Value) error {
	if o.finalized {
		return newError(KindFinalized, "set property %q after finalize", key)
	}

	return o.env.SetNamedProperty(o.handle, key, val)
}

// TryToJS finalizes the object and returns its handle. env must be the Env
// the object was created in.
func (o *Object) TryToJS(env *Env) (Value, error) {
	if env != o.env {
		return 0, newError(KindInvalidHandle, "object %d belongs to a different env", o.handle)
	}

	if t := env.TypeOf(o.handle); t != TypeObject {
		return 0, newError(KindWrongType, "finalize %s as object", t)
	}

	o.finalized = true

	return o.handle, nil
}
