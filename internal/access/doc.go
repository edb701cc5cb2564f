// Package access resolves single field-path steps against arbitrary source
// values: map[string]any, string-keyed maps, structs, slices and arrays,
// through any number of pointers and interfaces.
//
// A step that cannot be taken yields "absent" rather than an error. Only
// expanding a present value that is not a collection is an error.
package access
