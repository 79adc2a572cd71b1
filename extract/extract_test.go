package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

const widgetSource = `/* @type Widget */
/**
 * A widget.
 */
function Widget() {} // <constructor>
`

const colorSource = `// @type Color
/**
 * The available colors.
 */
var Color = Object.freeze({
	/**
	 * Red.
	 */
	Red: {}, // <enum>
});
`

const viewSource = `/**
 * The default duration.
 */
const BMAnimationDuration = 300; // <Number>

// @type BMView
/**
 * Constructs a view.
 * @param node <DOMNode>    The node.
 */
var BMView = function (node) {}; // <constructor>

BMView.prototype = {

	/**
	 * The frame.
	 */
	_frame: null, // <BMRect, nullable>

	get frame() {
		return this._frame;
	},

	set frame(frame) {
		this._frame = frame;
	},

	/**
	 * The node.
	 */
	_node: null, // <DOMNode>

	/**
	 * Lays out the view.
	 * @param animated <Boolean, nullable>   Whether to animate.
	 * @return <Promise<void>>               Resolves when done.
	 */
	layout: async function (animated) {
	},
};

/**
 * Returns the view for a node.
 * @param node <DOMNode>     The node.
 * @return <BMView, nullable> The view.
 */
BMView.viewForNode = function (node) {};

// @endType

/**
 * Waits.
 * @param ms <Number>   Milliseconds.
 */
function BMWait(ms) {}
`

func TestExtractWidget(t *testing.T) {
	table := Extract(widgetSource)

	require.Len(t, table.Sections, 1)
	section := table.Sections[0]
	assert.Equal(t, "Widget", section.TypeName)

	class, ok := section.Entry.(*api.ClassEntry)
	require.True(t, ok, "expected a class entry, got %T", section.Entry)
	assert.Equal(t, "Widget", class.Name)
	assert.Empty(t, class.Components)
	assert.False(t, class.IsPrivate)
	require.NotNil(t, class.Constructor)
	assert.Empty(t, class.Constructor.Arguments)
	assert.Equal(t, "A widget.", class.Doc)
	assert.Equal(t, 5, class.Constructor.Line)
}

func TestExtractColor(t *testing.T) {
	table := Extract(colorSource)

	require.Len(t, table.Sections, 1)
	enum, ok := table.Sections[0].Entry.(*api.EnumEntry)
	require.True(t, ok, "expected an enum entry, got %T", table.Sections[0].Entry)
	assert.Equal(t, "Color", enum.Name)
	assert.Equal(t, "The available colors.", enum.Doc)
	require.Len(t, enum.Fields, 1)
	assert.Equal(t, "Red", enum.Fields[0].Name)
	assert.Equal(t, api.KindConstant, enum.Fields[0].Kind)
	assert.True(t, enum.Fields[0].IsStatic)
}

func TestExtractView(t *testing.T) {
	table := Extract(viewSource)

	globals := table.Globals.All()
	require.Len(t, globals, 2)
	assert.Equal(t, "BMAnimationDuration", globals[0].Name)
	assert.Equal(t, api.KindSymbol, globals[0].Kind)
	assert.Equal(t, "Number", globals[0].Type)
	assert.True(t, globals[0].IsConst)
	assert.Equal(t, "BMWait", globals[1].Name)
	assert.Equal(t, api.KindFunction, globals[1].Kind)

	view := table.Section("BMView")
	require.NotNil(t, view)
	class, ok := view.Entry.(*api.ClassEntry)
	require.True(t, ok)

	require.NotNil(t, class.Constructor)
	require.Len(t, class.Constructor.Arguments, 1)
	assert.Equal(t, "node", class.Constructor.Arguments[0].Name)

	require.Len(t, class.Components, 4)

	frame := class.Components[0]
	assert.Equal(t, api.KindProperty, frame.Kind)
	assert.Equal(t, "frame", frame.Name)
	assert.Equal(t, "BMRect", frame.Type)
	assert.Equal(t, api.Nullable, frame.Nullability)
	assert.Equal(t, api.ReadWrite, frame.Access)
	assert.True(t, frame.Read)
	assert.True(t, frame.Write)

	node := class.Components[1]
	assert.Equal(t, "_node", node.Name)
	assert.True(t, node.IsPrivate)
	assert.Equal(t, api.PrivateOnly, node.Access)

	layout := class.Components[2]
	assert.Equal(t, api.KindMethod, layout.Kind)
	assert.True(t, layout.IsAsync)
	require.NotNil(t, layout.Return)
	assert.Equal(t, "Promise<void>", layout.Return.Type)

	viewForNode := class.Components[3]
	assert.True(t, viewForNode.IsStatic)
	assert.Equal(t, "BMView.viewForNode.6", viewForNode.LinkID)
}

func TestExtractLinkIDsAreUnique(t *testing.T) {
	table := Extract(viewSource)

	seen := map[string]bool{}
	check := func(m *api.Member) {
		assert.False(t, seen[m.LinkID], "duplicate link id %s", m.LinkID)
		seen[m.LinkID] = true
	}
	for _, m := range table.Globals.All() {
		check(m)
	}
	for _, s := range table.Sections {
		for _, m := range s.Members() {
			check(m)
		}
	}
	assert.Len(t, seen, 7)
}

func TestExtractIsReentrant(t *testing.T) {
	first := Extract(viewSource)
	second := Extract(viewSource)

	assert.Equal(t, first.Globals.Len(), second.Globals.Len())
	assert.Equal(t,
		first.Globals.All()[0].LinkID,
		second.Globals.All()[0].LinkID,
	)
}

func TestExtractGlobalsLastWriterWins(t *testing.T) {
	table := Extract(`/**
 * First.
 */
var a; // <Number>

/**
 * Second.
 */
var b; // <String>

/**
 * Third.
 */
var a; // <Boolean>
`)

	globals := table.Globals.All()
	require.Len(t, globals, 2)
	assert.Equal(t, "a", globals[0].Name)
	assert.Equal(t, "Boolean", globals[0].Type)
	assert.Equal(t, "b", globals[1].Name)
}

func TestExtractImplicitSection(t *testing.T) {
	table := Extract(`/**
 * A point.
 */
class BMPoint extends BMObject {

	/**
	 * The x coordinate.
	 */
	x = 0; // <Number>

	/**
	 * Copies the point.
	 * @return <BMPoint>  A copy.
	 */
	copy() {
		return new BMPoint(this.x);
	}
}
`)

	point := table.Section("BMPoint")
	require.NotNil(t, point)
	class := point.Entry.(*api.ClassEntry)
	assert.Equal(t, "BMObject", class.Extends)
	assert.Equal(t, "A point.", class.Doc)
	require.Len(t, class.Components, 2)
	assert.Equal(t, "x", class.Components[0].Name)
	assert.Equal(t, "copy", class.Components[1].Name)
}

func TestExtractInterface(t *testing.T) {
	table := Extract(`// @type interface BMViewDelegate
/**
 * @required
 * Invoked when the view appears.
 */
viewDidAppear(view) {}

/**
 * Invoked when the view disappears.
 */
viewDidDisappear(view) {}
`)

	section := table.Section("BMViewDelegate")
	require.NotNil(t, section)
	assert.True(t, section.Interface)
	class := section.Entry.(*api.ClassEntry)
	assert.True(t, class.IsInterface)
	require.Len(t, class.Components, 2)
	assert.False(t, class.Components[0].Optional)
	assert.True(t, class.Components[1].Optional)
}

func TestExtractMixedSectionKeepsFirstKind(t *testing.T) {
	table := Extract(`// @type Mixed
/**
 * Red.
 */
Red: 1, // <enum>

/**
 * A method.
 */
Mixed.prototype.draw = function () {};
`)

	section := table.Section("Mixed")
	require.NotNil(t, section)
	enum, ok := section.Entry.(*api.EnumEntry)
	require.True(t, ok)
	assert.Len(t, enum.Fields, 1)
}

func TestExtractOpaque(t *testing.T) {
	table := Extract(`/**
 * Registers the view.
 */
register(BMView);
`)

	assert.Zero(t, table.Globals.Len())
	require.Len(t, table.Opaque, 1)
	assert.Equal(t, "register(BMView);", table.Opaque[0].Name)
	assert.Equal(t, api.KindOpaque, table.Opaque[0].Kind)
}

func TestExtractAccessorWithoutAnnotation(t *testing.T) {
	table := Extract(`// @type BMLabel
/**
 * A label.
 */
var BMLabel = function () {}; // <constructor private>

BMLabel.prototype = {
	/**
	 * The text.
	 * @return <String, nullable>   The text.
	 */
	get text() {
		return this._text;
	},
};
`)

	class := table.Section("BMLabel").Entry.(*api.ClassEntry)
	assert.True(t, class.IsPrivate)
	require.Len(t, class.Components, 1)
	text := class.Components[0]
	assert.Equal(t, "String", text.Type)
	assert.Equal(t, api.Nullable, text.Nullability)
	assert.Equal(t, api.ReadOnly, text.Access)
}
