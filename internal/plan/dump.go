package plan

import (
	"github.com/davecgh/go-spew/spew"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Dump returns a deep dump of the plan for debugging.
func Dump(p *Plan) string {
	return dumper.Sdump(p)
}
