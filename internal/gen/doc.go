// Package gen turns a plan into executable form.
//
// Compile composes one closure per field record into a Routine; running it
// walks no specification, it only calls the composed closures. Render emits
// the same routine as formatted Go-like source for inspection.
//
// In safe mode every field closure is guarded: errors and panics become
// *FieldError values whose messages are collected, and the remaining fields
// still run. In unsafe mode the first error aborts the run and panics
// propagate to the caller.
package gen
