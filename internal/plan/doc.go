// Package plan lays out a mapping specification as an arena of field
// records consumed by code generation.
//
// Planning pipeline:
//  1. The caller converts its specification into Entry trees (rule kinds are
//     decided there, once)
//  2. Build sorts every level by target name, merges nested-mapper defaults
//     with the outer defaults subtree and appends one Node per field
//  3. internal/gen composes the nodes into a routine
//  4. Export and Summarize turn a plan back into a catalog definition or a
//     human-readable report
package plan
