package jsrt_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsderive/jsrt"
)

func TestEnv_ObjectPropertiesKeepInsertionOrder(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv()
	handle, err := env.CreateObject()
	require.NoError(t, err)

	obj := jsrt.NewObject(env, handle)
	for _, key := range []string{"zeta", "alpha", "mid"} {
		v, err := env.CreateString(key)
		require.NoError(t, err)
		require.NoError(t, obj.SetProperty(key, v))
	}

	// Overwriting keeps the original position.
	one, err := env.CreateInt64(1)
	require.NoError(t, err)
	require.NoError(t, obj.SetProperty("zeta", one))

	v, err := obj.TryToJS(env)
	require.NoError(t, err)
	assert.Equal(t, jsrt.TypeObject, env.TypeOf(v))

	names, err := env.PropertyNames(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, names)

	out, err := env.ExportJSON(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":1,"alpha":"alpha","mid":"mid"}`, string(out))
	assert.Equal(t, `{"zeta":1,"alpha":"alpha","mid":"mid"}`, string(out))
}

func TestEnv_ArrayHasFixedLength(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv()
	arr, err := env.CreateArrayWithLen(2)
	require.NoError(t, err)

	n, err := env.ArrayLen(arr)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	elem, err := env.CreateString("x")
	require.NoError(t, err)

	require.NoError(t, env.SetElement(arr, elem, 1))

	err = env.SetElement(arr, elem, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindOutOfRange})

	out, err := env.Export(arr)
	require.NoError(t, err)
	assert.Equal(t, []any{nil, "x"}, out)
}

func TestEnv_ZeroLengthArray(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv()
	arr, err := env.CreateArrayWithLen(0)
	require.NoError(t, err)

	out, err := env.ExportJSON(arr)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestEnv_HandleLimit(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv(jsrt.WithHandleLimit(2))

	_, err := env.CreateObject()
	require.NoError(t, err)
	_, err = env.CreateString("a")
	require.NoError(t, err)

	_, err = env.CreateString("b")
	require.Error(t, err)

	var rtErr *jsrt.Error
	require.True(t, errors.As(err, &rtErr))
	assert.Equal(t, jsrt.KindResourceExhausted, rtErr.Kind)
	assert.Equal(t, 2, env.Stats().Handles)

	// Reserved values never count against the limit.
	assert.Equal(t, jsrt.TypeNull, env.TypeOf(env.Null()))
	assert.Equal(t, jsrt.TypeBoolean, env.TypeOf(env.CreateBool(true)))
}

func TestEnv_WrongTypeAndInvalidHandle(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv()
	str, err := env.CreateString("s")
	require.NoError(t, err)

	err = env.SetNamedProperty(str, "k", env.Null())
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindWrongType})

	err = env.SetElement(str, env.Null(), 0)
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindWrongType})

	assert.Equal(t, jsrt.TypeInvalid, env.TypeOf(9999))
	_, err = env.Export(0)
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindInvalidHandle})
}

func TestObject_RejectsWritesAfterFinalize(t *testing.T) {
	t.Parallel()

	env := jsrt.NewEnv()
	handle, err := env.CreateObject()
	require.NoError(t, err)

	obj := jsrt.NewObject(env, handle)
	_, err = obj.TryToJS(env)
	require.NoError(t, err)

	err = obj.SetProperty("late", env.Null())
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindFinalized})
	assert.Equal(t, 0, env.Stats().PropertySets)

	_, err = obj.TryToJS(jsrt.NewEnv())
	assert.ErrorIs(t, err, &jsrt.Error{Kind: jsrt.KindInvalidHandle})
}

func TestValueType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "object", jsrt.TypeObject.String())
	assert.Equal(t, "undefined", jsrt.TypeUndefined.String())
	assert.Equal(t, "ValueType(42)", jsrt.ValueType(42).String())
}

func TestEnv_WithLoggerTracesWrites(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	l.SetFormatter(log.JSONFormatter)

	env := jsrt.NewEnv(jsrt.WithLogger(l))

	arr, err := env.CreateArrayWithLen(1)
	require.NoError(t, err)
	require.NoError(t, env.SetElement(arr, env.Null(), 0))

	out := buf.String()
	assert.Contains(t, out, `"msg":"alloc"`)
	assert.Contains(t, out, `"msg":"set element"`)
	assert.Contains(t, out, `"index":0`)
}
