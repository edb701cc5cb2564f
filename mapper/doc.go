// Package mapper compiles declarative per-field mapping specifications into
// reusable routines that reshape one value into another.
//
// A Spec maps target-field names to rules:
//
//	user := mapper.Create(mapper.Spec{
//		"name":  mapper.Path("profile.name"),
//		"tags":  mapper.Path("tags.[].label"),
//		"email": mapper.Func(func(src any) (any, error) { return lookupEmail(src) }),
//		"addr":  address, // a *mapper.Mapper, run against src["addr"]
//		"meta": mapper.Spec{
//			"source": mapper.Path("origin"),
//		},
//	}, mapper.Defaults{"name": "anonymous"})
//
//	res, err := user.Execute(src)
//
// The rule kind is decided by the Go type of each value when the mapper is
// compiled, never again on execution. Sources may be map[string]any, any
// string-keyed map, structs (matched by field name, json tag or normalized
// identifier) and slices, through pointers and interfaces.
//
// Mappers compile once, on the first Execute or an explicit Compile, and are
// safe for concurrent use afterwards.
//
// Mapping specifications are executable configuration. They must come from
// trusted, developer-authored sources (code or catalog files shipped with
// the application), never from end-user input.
package mapper
