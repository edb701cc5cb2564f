package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"field-mapper/internal/match"
	"field-mapper/internal/plan"
)

// renderData holds all data needed for the routine template.
type renderData struct {
	Mapper   string
	FuncName string
	Mode     string
	Nodes    int
	Body     string
}

var routineTemplate = template.Must(template.New("routine").Parse(`// Code generated by field-mapper. DO NOT EDIT.

package routines

// {{.FuncName}} is the compiled routine of mapper {{printf "%q" .Mapper}}
// ({{.Mode}} mode, {{.Nodes}} field records).
func {{.FuncName}}(rt *runtime, src any, dst map[string]any) {
{{.Body}}}
`))

// Render emits the routine the plan compiles to as formatted Go-like source.
// rt.path resolves a rendered path object, rt.each maps over a collection,
// rt.fold falls back to a field default, rt.call invokes a captured function
// and rt.guard collects a field error in safe mode.
//
// If formatting fails the unformatted source is returned with the error.
func Render(p *plan.Plan, name string, unsafe bool) (string, error) {
	r := &renderer{plan: p, unsafe: unsafe}
	r.level(p.Roots, "src", "dst", 1)

	mode := "safe"
	if unsafe {
		mode = "unsafe"
	}

	data := renderData{
		Mapper:   name,
		FuncName: funcName(name),
		Mode:     mode,
		Nodes:    len(p.Nodes),
		Body:     r.buf.String(),
	}

	var buf bytes.Buffer
	if err := routineTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.String(), fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return string(formatted), nil
}

type renderer struct {
	plan   *plan.Plan
	unsafe bool
	buf    strings.Builder
}

func (r *renderer) line(format string, args ...any) {
	fmt.Fprintf(&r.buf, format, args...)
	r.buf.WriteByte('\n')
}

func (r *renderer) level(ids []int, scope, dst string, depth int) {
	for _, id := range ids {
		r.node(r.plan.Node(id), scope, dst, depth)
	}
}

func (r *renderer) node(n *plan.Node, scope, dst string, depth int) {
	key := strconv.Quote(n.Target)

	switch n.Kind {
	case plan.RulePath:
		r.line("// %s: %s", commentText(n.TargetPath), commentText(n.Path.Raw))
		r.guarded(n, fmt.Sprintf("if v, ok := rt.fold(%s, rt.def(%d)); ok {\n%s[%s] = v\n}",
			pathExpr(n, scope, depth), n.ID, dst, key))

	case plan.RuleFunc:
		r.line("// %s: %s", commentText(n.TargetPath), commentText(funcLabel(n)))
		r.guarded(n, fmt.Sprintf("if v, ok := rt.fold(rt.call(%d, %s), rt.def(%d)); ok {\n%s[%s] = v\n}",
			n.ID, scope, n.ID, dst, key))

	case plan.RuleMapper, plan.RuleObject:
		inner, sub := scope, fmt.Sprintf("dst%d", depth)

		r.line("// %s: %s", commentText(n.TargetPath), commentText(containerLabel(n)))
		r.line("{")
		r.line("%s := map[string]any{}", sub)

		if n.Kind == plan.RuleMapper {
			inner = fmt.Sprintf("scope%d", depth)
			r.line("var %s any", inner)
			r.guarded(n, fmt.Sprintf("%s = rt.path(%s, %s)\n%s[%s] = %s", inner, scope, key, dst, key, sub))
		} else {
			r.guarded(n, fmt.Sprintf("%s[%s] = %s", dst, key, sub))
		}

		r.level(n.Children, inner, sub, depth+1)
		r.line("}")
	}
}

func (r *renderer) guarded(n *plan.Node, stmt string) {
	if r.unsafe {
		r.line("%s", stmt)
		return
	}

	r.line("rt.guard(%d, func() {\n%s\n})", n.ID, stmt)
}

// pathExpr renders the resolution of a segmented path: every object after
// the first is resolved inside rt.each over the previous result.
func pathExpr(n *plan.Node, scope string, depth int) string {
	objects := n.Path.Objects
	expr := fmt.Sprintf("rt.path(%s, %s)", scope, strconv.Quote(objects[0].Path))

	if len(objects) == 1 {
		return expr
	}

	var b strings.Builder

	b.WriteString(expr)

	for i, obj := range objects[1:] {
		elem := fmt.Sprintf("e%d_%d", depth, i+1)
		b.WriteString(fmt.Sprintf(", func(%s any) any {\nreturn ", elem))

		inner := elem
		if !obj.IsEmpty() {
			inner = fmt.Sprintf("rt.path(%s, %s)", elem, strconv.Quote(obj.Path))
		}

		if i == len(objects)-2 {
			b.WriteString(inner)
		} else {
			b.WriteString("rt.each(" + inner)
		}
	}

	for range objects[1:] {
		b.WriteString("\n})")
	}

	return "rt.each(" + b.String()
}

// commentText quotes text that cannot sit on a single comment line as is.
func commentText(s string) string {
	if strings.IndexFunc(s, func(r rune) bool { return !unicode.IsPrint(r) }) < 0 {
		return s
	}

	return strconv.Quote(s)
}

func funcLabel(n *plan.Node) string {
	if n.Transform == "" {
		return "func"
	}

	if n.From == "" {
		return n.Transform + "()"
	}

	return n.Transform + "(" + n.From + ")"
}

func containerLabel(n *plan.Node) string {
	if n.Kind == plan.RuleObject {
		return "object"
	}

	if n.Mapper == "" {
		return "mapper"
	}

	return "mapper " + n.Mapper
}

// funcName turns a mapper name into a Go identifier: "order-line" -> "mapOrderLine".
func funcName(name string) string {
	var b strings.Builder

	b.WriteString("map")

	for _, tok := range match.TokenizeIdent(name) {
		runes := []rune(strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}

			return -1
		}, tok))

		if len(runes) == 0 {
			continue
		}

		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}

	return b.String()
}
