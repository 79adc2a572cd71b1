package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		decl  Declaration
		shape Shape
		check func(t *testing.T, c Classification)
	}{
		{
			name:  "prototype method",
			decl:  Declaration{Text: "BMView.prototype.layout = async function (frame) {\n}"},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "layout", c.Name)
				assert.Equal(t, "BMView", c.Owner)
				assert.True(t, c.IsAsync)
				assert.Equal(t, "async method", c.Category)
			},
		},
		{
			name:  "object literal method",
			decl:  Declaration{Text: "_layoutSubviews: function () {\n}", InSection: true},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "_layoutSubviews", c.Name)
				assert.True(t, c.IsPrivate)
				assert.Equal(t, "private method", c.Category)
			},
		},
		{
			name:  "class body method",
			decl:  Declaration{Text: "async animate(duration) {\n\treturn 1;\n}", InSection: true},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "animate", c.Name)
				assert.True(t, c.IsAsync)
			},
		},
		{
			name:  "class constructor",
			decl:  Declaration{Text: "constructor(frame) {\n}", InSection: true},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.True(t, c.IsConstructor)
			},
		},
		{
			name:  "optional interface method",
			decl:  Declaration{Text: "viewDidAppear(view) {}", InSection: true, Interface: true},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.True(t, c.Optional)
				assert.Equal(t, "optional method", c.Category)
			},
		},
		{
			name:  "required interface method",
			decl:  Declaration{Text: "viewDidAppear(view) {}", InSection: true, Interface: true, Required: true},
			shape: ShapeInstanceMethod,
			check: func(t *testing.T, c Classification) {
				assert.False(t, c.Optional)
			},
		},
		{
			name:  "call is not a method",
			decl:  Declaration{Text: "register(BMView);"},
			shape: ShapeOpaque,
		},
		{
			name:  "static assignment",
			decl:  Declaration{Text: "BMView.viewForNode = function (node) {\n}"},
			shape: ShapeStaticMethod,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "viewForNode", c.Name)
				assert.Equal(t, "BMView", c.Owner)
				assert.True(t, c.IsStatic)
				assert.Equal(t, "static method", c.Category)
			},
		},
		{
			name:  "static class member",
			decl:  Declaration{Text: "static _cache(key) {\n}", InSection: true},
			shape: ShapeStaticMethod,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "private static method", c.Category)
			},
		},
		{
			name:  "constructor function literal",
			decl:  Declaration{Text: "var BMView = function () {}; // <constructor>"},
			shape: ShapeFunctionLiteral,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "BMView", c.Name)
				assert.True(t, c.IsConstructor)
				assert.False(t, c.IsPrivate)
			},
		},
		{
			name:  "private constructor",
			decl:  Declaration{Text: "var BMLayout = function () {}; // <constructor private>"},
			shape: ShapeFunctionLiteral,
			check: func(t *testing.T, c Classification) {
				assert.True(t, c.IsConstructor)
				assert.True(t, c.IsPrivate)
			},
		},
		{
			name:  "arrow function literal",
			decl:  Declaration{Text: "const clamp = (value) => Math.max(0, value); // <Number>"},
			shape: ShapeFunctionLiteral,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "clamp", c.Name)
				assert.False(t, c.IsConstructor)
				assert.Equal(t, "Number", c.Annotation)
			},
		},
		{
			name:  "class declaration",
			decl:  Declaration{Text: "class BMView extends BMObject {"},
			shape: ShapeClass,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "BMView", c.Name)
				assert.Equal(t, "BMObject", c.Extends)
			},
		},
		{
			name:  "named function",
			decl:  Declaration{Text: "async function BMWait(ms) {\n}"},
			shape: ShapeFunction,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "BMWait", c.Name)
				assert.True(t, c.IsAsync)
				assert.Equal(t, "async function", c.Category)
			},
		},
		{
			name:  "constructor function",
			decl:  Declaration{Text: "function Widget() {} // <constructor>"},
			shape: ShapeFunction,
			check: func(t *testing.T, c Classification) {
				assert.True(t, c.IsConstructor)
			},
		},
		{
			name:  "frozen enum",
			decl:  Declaration{Text: "var Color = Object.freeze({\n\tRed: {},\n});"},
			shape: ShapeEnum,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "Color", c.Name)
				assert.False(t, c.IsEnumField)
			},
		},
		{
			name:  "enum field",
			decl:  Declaration{Text: "Red: {}, // <enum>", InSection: true},
			shape: ShapeEnum,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "Red", c.Name)
				assert.True(t, c.IsEnumField)
			},
		},
		{
			name:  "typed variable",
			decl:  Declaration{Text: "const BMAnimationDuration = 300; // <Number>"},
			shape: ShapeTypedVariable,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "BMAnimationDuration", c.Name)
				assert.True(t, c.IsConst)
				assert.Equal(t, "Number", c.Annotation)
				assert.Equal(t, "constant", c.Category)
			},
		},
		{
			name:  "typed property",
			decl:  Declaration{Text: "frame: null, // <BMRect, nullable>", InSection: true},
			shape: ShapeTypedProperty,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "frame", c.Name)
				assert.Equal(t, "BMRect, nullable", c.Annotation)
				assert.Equal(t, api.ReadWrite, c.Access)
				assert.True(t, c.Read)
				assert.True(t, c.Write)
			},
		},
		{
			name:  "typed property outside a section",
			decl:  Declaration{Text: "frame: null, // <BMRect>"},
			shape: ShapeOpaque,
		},
		{
			name:  "untyped variable",
			decl:  Declaration{Text: "let BMCache = {};"},
			shape: ShapeVariable,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "BMCache", c.Name)
				assert.Empty(t, c.Annotation)
			},
		},
		{
			name:  "untyped property",
			decl:  Declaration{Text: "this.node = node;", InSection: true},
			shape: ShapeProperty,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "node", c.Name)
			},
		},
		{
			name:  "backing field with getter",
			decl:  Declaration{Text: "_frame: null, // <BMRect>\n\n\tget frame() {\n\t\treturn this._frame;\n\t},\n", InSection: true},
			shape: ShapeTypedProperty,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "frame", c.Name)
				assert.False(t, c.IsPrivate)
				assert.Equal(t, api.ReadOnly, c.Access)
				assert.True(t, c.Read)
				assert.False(t, c.Write)
				assert.Equal(t, "readonly property", c.Category)
			},
		},
		{
			name:  "private backing field",
			decl:  Declaration{Text: "_node: null, // <DOMNode>\n\n\t_frame: null,\n", InSection: true},
			shape: ShapeTypedProperty,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "_node", c.Name)
				assert.True(t, c.IsPrivate)
				assert.Equal(t, api.PrivateOnly, c.Access)
			},
		},
		{
			name:  "getter with setter",
			decl:  Declaration{Text: "get bounds() { // <BMRect>\n\treturn this._bounds;\n}\nset bounds(b) {\n}", InSection: true},
			shape: ShapeAccessor,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "bounds", c.Name)
				assert.Equal(t, "BMRect", c.Annotation)
				assert.Equal(t, api.ReadWrite, c.Access)
				assert.True(t, c.Read)
				assert.True(t, c.Write)
			},
		},
		{
			name:  "lone setter",
			decl:  Declaration{Text: "set delegate(d) {\n}", InSection: true},
			shape: ShapeAccessor,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, api.WriteOnly, c.Access)
				assert.False(t, c.Read)
				assert.True(t, c.Write)
				assert.Equal(t, "writeonly property", c.Category)
			},
		},
		{
			name:  "fallback",
			decl:  Declaration{Text: "BMView.prototype = Object.create(BMObject.prototype);"},
			shape: ShapeOpaque,
			check: func(t *testing.T, c Classification) {
				assert.Equal(t, "symbol", c.Category)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.decl)
			assert.Equal(t, tt.shape, c.Shape)
			if tt.check != nil {
				tt.check(t, c)
			}
		})
	}
}

func TestClassifyPrecedence(t *testing.T) {
	// A prototype assignment of a function is a method, not a property.
	c := Classify(Declaration{Text: "BMView.prototype.frame = function () {};", InSection: true})
	assert.Equal(t, ShapeInstanceMethod, c.Shape)

	// A constructor-tagged literal is a constructor before it is a typed variable.
	c = Classify(Declaration{Text: "var BMView = function () {}; // <constructor>"})
	assert.Equal(t, ShapeFunctionLiteral, c.Shape)
	assert.True(t, c.IsConstructor)

	// Enum fields are matched before typed properties.
	c = Classify(Declaration{Text: "Red: 1, // <enum>", InSection: true})
	assert.Equal(t, ShapeEnum, c.Shape)
}
