// Package jsrt is the host runtime value API that code generated by jsderive
// calls into.
//
// Values live in an Env, a handle table modelled on a JavaScript engine
// heap: a Value is an opaque handle that is only meaningful together with
// the Env that produced it. Objects are built through an Object builder and
// finalized with TryToJS; arrays are plain values as soon as they are
// allocated.
//
// Key types:
//   - Env: value heap with object/array construction and property/element setters
//   - Object: builder for an object value bound to an Env
//   - TryIntoJS: the conversion contract every derived type implements
//   - Error: the single error type returned by every runtime primitive
package jsrt
