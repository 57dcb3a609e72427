// Package casing converts Go and snake_case identifiers into the camelCase
// property names used on external objects.
package casing
