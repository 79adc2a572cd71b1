// Package tstype translates annotation types into TypeScript types.
//
// Annotation types are written the way the documentation blocks spell them:
//
//	Number                    number
//	[BMView]                  BMView[]
//	String or Number          string | number
//	Object<String, [Number]>  Dictionary<number[]>
//	void ^ (Number, String)   (arg0: number, arg1: string) => void
//	Class extends BMView      typeof BMView
//	BMView, nullable          BMView | undefined
//
// Translation is recursive, so arrays of arrays and generics of generics nest
// to any depth.
package tstype

import (
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

var log = commonlog.GetLogger("dtsgen.tstype")

// OptionalMarker is appended to types that may be undefined.
const OptionalMarker = " | undefined"

var boxed = map[string]string{
	"Object":  "object",
	"Number":  "number",
	"String":  "string",
	"Boolean": "boolean",
	"Void":    "void",
}

var unescaper = strings.NewReplacer(`\<`, "<", `\>`, ">", "&lt;", "<", "&gt;", ">")

// Translate converts one annotation type into a TypeScript type. When
// nullable is set, or the type carries a ", nullable" modifier, the result
// is marked optional.
func Translate(t string, nullable bool) string {
	t, n := StripModifier(t)
	if n == api.Nullable {
		nullable = true
	}
	if rest, ok := strings.CutPrefix(t, "nullable "); ok {
		t = strings.TrimSpace(rest)
		nullable = true
	} else if rest, ok := strings.CutPrefix(t, "nullResettable "); ok {
		t = strings.TrimSpace(rest)
	}
	return Optional(translate(t), nullable)
}

// Optional appends the optional marker to t when nullable is set.
func Optional(t string, nullable bool) string {
	if !nullable || strings.HasSuffix(t, OptionalMarker) {
		return t
	}
	return Wrap(t) + OptionalMarker
}

func translate(t string) string {
	t = strings.TrimSpace(t)
	switch t {
	case "", "enum", "Multiple Types":
		return "any"
	}
	t = unescaper.Replace(t)

	if inner, ok := arrayElement(t); ok {
		return Wrap(Translate(inner, false)) + "[]"
	}

	if parts := splitTopLevel(t, " or "); len(parts) > 1 {
		out := make([]string, len(parts))
		for i, p := range parts {
			out[i] = Translate(p, false)
		}
		return strings.Join(out, " | ")
	}

	if fn, ok := functionPointer(t); ok {
		return fn
	}

	if rest, ok := cutPrefixFold(t, "class extends "); ok {
		return "typeof " + translate(rest)
	}

	if g, ok := generic(t); ok {
		return g
	}

	if mapped, ok := boxed[t]; ok {
		t = mapped
	}
	if t == "object" {
		return "any"
	}
	return t
}

// arrayElement returns T for a type written as [T].
func arrayElement(t string) (string, bool) {
	if !strings.HasPrefix(t, "[") || matching(t, 0) != len(t)-1 {
		return "", false
	}
	return t[1 : len(t)-1], true
}

// functionPointer translates "R ^ (A, B)" and "R (^)(A, B)" into an arrow
// function type with positional argument names.
func functionPointer(t string) (string, bool) {
	t = strings.Replace(t, "(^)", "^", 1)
	caret := indexTopLevel(t, "^")
	if caret < 0 {
		return "", false
	}
	ret := strings.TrimSpace(t[:caret])
	rest := strings.TrimSpace(t[caret+1:])

	var args []string
	if rest != "" {
		if rest[0] != '(' || matching(rest, 0) != len(rest)-1 {
			return "", false
		}
		args = splitArguments(rest[1 : len(rest)-1])
	}
	if len(args) == 1 && (args[0] == "void" || args[0] == "Void") {
		args = nil
	}

	var sb strings.Builder
	sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("arg" + strconv.Itoa(i) + ": " + Translate(a, false))
	}
	sb.WriteString(") => ")
	if ret == "" {
		sb.WriteString("void")
	} else {
		sb.WriteString(Translate(ret, false))
	}
	return sb.String(), true
}

// generic translates Name<A, B>, recursing into every argument. The keyed
// object form Object<String, T> becomes Dictionary<T>.
func generic(t string) (string, bool) {
	open := strings.IndexByte(t, '<')
	if open <= 0 {
		return "", false
	}
	end := matching(t, open)
	if end < 0 {
		log.Warningf("unterminated generic type %q", t)
		return "", false
	}
	if end != len(t)-1 {
		return "", false
	}

	name := strings.TrimSpace(t[:open])
	if mapped, ok := boxed[name]; ok {
		name = mapped
	}
	args := splitArguments(t[open+1 : end])

	if name == "object" {
		switch {
		case len(args) == 2 && translate(args[0]) == "string":
			return "Dictionary<" + Translate(args[1], false) + ">", true
		case len(args) == 1:
			return "Dictionary<" + Translate(args[0], false) + ">", true
		}
		return "any", true
	}

	out := make([]string, len(args))
	for i, a := range args {
		out[i] = Translate(a, false)
	}
	return name + "<" + strings.Join(out, ", ") + ">", true
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}
