package extract

import (
	"regexp"
	"strings"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

// Shape is the declaration form a documentation block was attached to.
type Shape string

const (
	ShapeInstanceMethod  Shape = "instance method"
	ShapeStaticMethod    Shape = "static method"
	ShapeFunctionLiteral Shape = "function literal"
	ShapeClass           Shape = "class"
	ShapeFunction        Shape = "function"
	ShapeEnum            Shape = "enum"
	ShapeTypedVariable   Shape = "typed variable"
	ShapeTypedProperty   Shape = "typed property"
	ShapeVariable        Shape = "variable"
	ShapeProperty        Shape = "property"
	ShapeAccessor        Shape = "accessor"
	ShapeOpaque          Shape = "opaque"
)

// Declaration is the text that follows a documentation block.
type Declaration struct {
	// Text starts at the declaration and runs to the end of its section, so
	// that matchers can look ahead past the declaration line.
	Text string
	// InSection is set when the declaration belongs to a named type.
	InSection bool
	Interface bool
	// Required is set when the documentation block carried @required.
	Required bool
}

// Classification is the outcome of matching a declaration.
type Classification struct {
	Shape Shape
	Name  string
	// Owner is the type a method is assigned onto, when the declaration
	// names one.
	Owner   string
	Extends string
	// Annotation is the content of the inline // <...> comment.
	Annotation string
	Category   string

	IsStatic      bool
	IsAsync       bool
	IsPrivate     bool
	IsConst       bool
	IsConstructor bool
	// IsEnumField separates enum constants from the enum declaration.
	IsEnumField bool
	Optional    bool

	Access api.Access
	Read   bool
	Write  bool
}

const ident = `[A-Za-z_$][\w$]*`

const fnValue = `(async\s+)?(?:function\b|\([^)]*\)\s*=>|` + ident + `\s*=>)`

var (
	inlineAnnotation = regexp.MustCompile(`//\s*<(.*)>\s*$`)

	reProtoMethod     = regexp.MustCompile(`^(` + ident + `)\.prototype\.(` + ident + `)\s*=\s*` + fnValue)
	reThisMethod      = regexp.MustCompile(`^this\.(` + ident + `)\s*=\s*` + fnValue)
	reLiteralMethod   = regexp.MustCompile(`^(` + ident + `)\s*:\s*` + fnValue)
	reShorthandMethod = regexp.MustCompile(`^(async\s+)?\*?\s*(` + ident + `)\s*\(`)
	reStaticAssign    = regexp.MustCompile(`^(` + ident + `)\.(` + ident + `)\s*=\s*` + fnValue)
	reStaticMember    = regexp.MustCompile(`^static\s+(async\s+)?\*?\s*(` + ident + `)\s*\(`)
	reFunctionLiteral = regexp.MustCompile(`^(var|let|const)\s+(` + ident + `)\s*=\s*` + fnValue)
	reClass           = regexp.MustCompile(`^class\s+(` + ident + `)(?:\s+extends\s+([\w$.]+))?`)
	reFunction        = regexp.MustCompile(`^(async\s+)?function\s*\*?\s*(` + ident + `)\s*\(`)
	reFrozen          = regexp.MustCompile(`^(var|let|const)\s+(` + ident + `)\s*=\s*Object\.freeze\s*\(`)
	reEnumField       = regexp.MustCompile(`^(` + ident + `|'[^']*'|"[^"]*")\s*:`)
	reVariable        = regexp.MustCompile(`^(var|let|const)\s+(` + ident + `)`)
	reProperty        = regexp.MustCompile(`^(static\s+)?(?:this\.)?(` + ident + `)\s*(?:[:=;,]|$)`)
	reAccessor        = regexp.MustCompile(`^(static\s+)?(get|set)\s+(` + ident + `)\s*\(`)
)

var keywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"with": true, "return": true, "function": true, "typeof": true, "new": true,
	"super": true, "await": true, "yield": true, "delete": true, "throw": true,
	"var": true, "let": true, "const": true, "class": true, "else": true,
	"do": true, "try": true, "break": true, "continue": true,
}

// input is a declaration split into the parts every matcher needs.
type input struct {
	Declaration
	line       string
	code       string
	annotation string
}

func newInput(d Declaration) *input {
	in := &input{Declaration: d}
	in.line = strings.TrimSpace(firstLine(d.Text))
	in.code = in.line
	if m := inlineAnnotation.FindStringSubmatchIndex(in.line); m != nil {
		in.annotation = strings.TrimSpace(in.line[m[2]:m[3]])
		in.code = strings.TrimSpace(in.line[:m[0]])
	}
	return in
}

func (in *input) annotationIs(word string) bool {
	return in.annotation == word || strings.HasPrefix(in.annotation, word+" ") || strings.HasPrefix(in.annotation, word+",")
}

type matcher struct {
	shape Shape
	match func(in *input) (Classification, bool)
}

// matchers are tried in order and the first match wins. The order settles
// ambiguous forms: prototype assignments are methods before they are
// properties, and a constructor-tagged function literal is a constructor
// before it is a function.
var matchers = []matcher{
	{ShapeInstanceMethod, matchInstanceMethod},
	{ShapeStaticMethod, matchStaticMethod},
	{ShapeFunctionLiteral, matchFunctionLiteral},
	{ShapeClass, matchClass},
	{ShapeFunction, matchFunction},
	{ShapeEnum, matchEnum},
	{ShapeTypedVariable, matchTypedVariable},
	{ShapeTypedProperty, matchTypedProperty},
	{ShapeVariable, matchVariable},
	{ShapeProperty, matchProperty},
	{ShapeAccessor, matchAccessor},
}

// Classify returns the first matching shape for d. Declarations that match
// no shape are classified as opaque symbols named by their first line.
func Classify(d Declaration) Classification {
	in := newInput(d)
	for _, m := range matchers {
		if c, ok := m.match(in); ok {
			c.Shape = m.shape
			log.Debugf("classified %q as %s", c.Name, c.Category)
			return c
		}
	}
	return Classification{Shape: ShapeOpaque, Name: in.line, Category: "symbol"}
}

func matchInstanceMethod(in *input) (Classification, bool) {
	c := Classification{Optional: in.Interface && !in.Required}

	if m := reProtoMethod.FindStringSubmatch(in.code); m != nil {
		c.Owner, c.Name, c.IsAsync = m[1], m[2], m[3] != ""
	} else if m := reThisMethod.FindStringSubmatch(in.code); m != nil {
		c.Name, c.IsAsync = m[1], m[2] != ""
	} else if m := reLiteralMethod.FindStringSubmatch(in.code); m != nil {
		c.Name, c.IsAsync = m[1], m[2] != ""
	} else if m := reShorthandMethod.FindStringSubmatchIndex(in.code); m != nil {
		name := in.code[m[4]:m[5]]
		if keywords[name] || !hasBody(in.Text, strings.Index(in.Text, "(")) {
			return c, false
		}
		c.Name, c.IsAsync = name, m[2] >= 0
	} else {
		return c, false
	}

	if c.Name == "constructor" && c.Owner == "" {
		return Classification{Name: c.Name, IsConstructor: true, Category: "constructor"}, true
	}
	c.IsPrivate = api.IsPrivateName(c.Name)
	c.Category = methodCategory(c)
	return c, true
}

func matchStaticMethod(in *input) (Classification, bool) {
	c := Classification{IsStatic: true}
	if m := reStaticAssign.FindStringSubmatch(in.code); m != nil {
		c.Owner, c.Name, c.IsAsync = m[1], m[2], m[3] != ""
	} else if m := reStaticMember.FindStringSubmatch(in.code); m != nil {
		if !hasBody(in.Text, strings.Index(in.Text, "(")) {
			return c, false
		}
		c.Name, c.IsAsync = m[2], m[1] != ""
	} else {
		return c, false
	}
	c.IsPrivate = api.IsPrivateName(c.Name)
	c.Category = methodCategory(c)
	return c, true
}

func matchFunctionLiteral(in *input) (Classification, bool) {
	m := reFunctionLiteral.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	return functionClassification(in, m[2], m[3] != ""), true
}

func matchClass(in *input) (Classification, bool) {
	m := reClass.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	return Classification{Name: m[1], Extends: m[2], Category: "class"}, true
}

func matchFunction(in *input) (Classification, bool) {
	m := reFunction.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	return functionClassification(in, m[2], m[1] != ""), true
}

func functionClassification(in *input, name string, async bool) Classification {
	if in.annotationIs("constructor") {
		c := Classification{
			Name:          name,
			IsConstructor: true,
			IsPrivate:     strings.Contains(in.annotation, "private"),
			Category:      "constructor",
		}
		if c.IsPrivate {
			c.Category = "private constructor"
		}
		return c
	}
	c := Classification{Name: name, IsAsync: async, Annotation: in.annotation, Category: "function"}
	if async {
		c.Category = "async function"
	}
	return c
}

func matchEnum(in *input) (Classification, bool) {
	if m := reFrozen.FindStringSubmatch(in.code); m != nil {
		return Classification{Name: m[2], Category: "enum"}, true
	}
	if !in.annotationIs("enum") {
		return Classification{}, false
	}
	m := reEnumField.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	return Classification{
		Name:        strings.Trim(m[1], `'"`),
		IsEnumField: true,
		IsStatic:    true,
		Category:    "enum constant",
	}, true
}

func matchTypedVariable(in *input) (Classification, bool) {
	if in.annotation == "" {
		return Classification{}, false
	}
	return variableClassification(in)
}

func matchVariable(in *input) (Classification, bool) {
	return variableClassification(in)
}

func variableClassification(in *input) (Classification, bool) {
	m := reVariable.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	c := Classification{Name: m[2], IsConst: m[1] == "const", Annotation: in.annotation, Category: "variable"}
	if c.IsConst {
		c.Category = "constant"
	}
	return c, true
}

func matchTypedProperty(in *input) (Classification, bool) {
	if in.annotation == "" {
		return Classification{}, false
	}
	return propertyClassification(in)
}

func matchProperty(in *input) (Classification, bool) {
	return propertyClassification(in)
}

// propertyClassification matches a field declaration inside a type. A field
// carrying the private prefix is resolved against the accessors after it.
func propertyClassification(in *input) (Classification, bool) {
	if !in.InSection {
		return Classification{}, false
	}
	m := reProperty.FindStringSubmatch(in.code)
	if m == nil || keywords[m[2]] {
		return Classification{}, false
	}
	c := Classification{
		Name:       m[2],
		IsStatic:   m[1] != "",
		Annotation: in.annotation,
		Access:     api.ReadWrite,
	}
	if api.IsPrivateName(c.Name) {
		public := strings.TrimPrefix(c.Name, api.PrivatePrefix)
		c.Access = ResolveAccess(in.Text, lineEnd(in.Text, 0), public)
		if c.Access == api.PrivateOnly {
			c.IsPrivate = true
		} else {
			c.Name = public
		}
	}
	c.Read = c.Access == api.ReadWrite || c.Access == api.ReadOnly || c.Access == api.PrivateOnly
	c.Write = c.Access == api.ReadWrite || c.Access == api.WriteOnly || c.Access == api.PrivateOnly
	c.Category = propertyCategory(c)
	return c, true
}

func matchAccessor(in *input) (Classification, bool) {
	m := reAccessor.FindStringSubmatch(in.code)
	if m == nil {
		return Classification{}, false
	}
	c := Classification{Name: m[3], IsStatic: m[1] != "", Annotation: in.annotation}
	if m[2] == "get" {
		c.Access = GetterAccess(in.Text, c.Name)
	} else {
		c.Access = api.WriteOnly
	}
	c.Read = c.Access != api.WriteOnly
	c.Write = c.Access != api.ReadOnly
	c.Category = propertyCategory(c)
	return c, true
}

// hasBody reports whether the parameter list opening at text[open] is
// followed by a block, which separates method definitions from calls.
func hasBody(text string, open int) bool {
	if open < 0 {
		return false
	}
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				rest := strings.TrimLeft(text[i+1:], " \t\r\n")
				return strings.HasPrefix(rest, "{")
			}
		}
	}
	return false
}

func methodCategory(c Classification) string {
	var parts []string
	if c.Optional {
		parts = append(parts, "optional")
	}
	if c.IsPrivate {
		parts = append(parts, "private")
	}
	if c.IsStatic {
		parts = append(parts, "static")
	}
	if c.IsAsync {
		parts = append(parts, "async")
	}
	return strings.Join(append(parts, "method"), " ")
}

func propertyCategory(c Classification) string {
	var parts []string
	if c.IsStatic {
		parts = append(parts, "static")
	}
	switch c.Access {
	case api.ReadOnly:
		parts = append(parts, "readonly")
	case api.WriteOnly:
		parts = append(parts, "writeonly")
	case api.PrivateOnly:
		parts = append(parts, "private")
	}
	return strings.Join(append(parts, "property"), " ")
}

func firstLine(text string) string {
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		return text[:nl]
	}
	return text
}
