// Package mapping provides the YAML catalog schema, field-path grammar,
// catalog validation and the transform registry used to build mappers from
// configuration.
//
// # Schema Overview
//
// A catalog has the following structure:
//
//	version: "1"
//	mappers:
//	  - name: address
//	    fields:
//	      city: city
//	      zip: postal.code
//	  - name: user
//	    description: flattens a store customer
//	    unsafe: false
//	    defaults:
//	      role: guest
//	      contact:
//	        email: unknown
//	    fields:
//	      name: profile.name
//	      upper: {$transform: upper, $from: profile.name}
//	      tags: tags.[].label
//	      address: {$mapper: address}
//	      contact:
//	        email: emails.[0]
//
// A field value is one of:
//   - a path string, resolved against the source
//   - a "$transform" directive with an optional "$from" path
//   - a "$mapper" directive naming another mapper of the catalog
//   - a nested mapping, producing an inline sub-object
//
// # Path Syntax
//
// Paths are "."-separated segments:
//   - Keys: "profile.name"
//   - Fixed elements: "items.[0]"
//   - Wildcards: "items.[].sku" maps over every element
//   - Arguments: "$1.id" selects a positional argument
//
// Mappers referencing each other are built in dependency order; reference
// cycles are reported by Validate and BuildOrder.
package mapping
