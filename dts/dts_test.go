package dts

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `/**
 * Returns a new frame.
 * @param x <Number>               The x coordinate.
 * @param size <BMSize, nullable>  The size.
 * @return <BMRect>                The frame.
 */
function BMRectMake(x, size) {}

// @type BMRect
/**
 * A rectangle.
 */
class BMRect {

	/**
	 * The origin.
	 */
	_origin; // <BMPoint>

	get origin() {
		return this._origin;
	}

	/**
	 * Returns a copy.
	 * @return <BMRect>  The copy.
	 */
	copy() {
		return new BMRect();
	}
}
// @endType
`

func TestGenerate(t *testing.T) {
	out, err := Generate(source, WithoutPrelude())
	require.NoError(t, err)

	want := `/**
 * Returns a new frame.
 * @param x The x coordinate.
 * @param size The size.
 * @return The frame.
 */
declare function BMRectMake(x: number, size?: BMSize): BMRect;

/**
 * A rectangle.
 */
declare class BMRect {
    /**
     * The origin.
     */
    readonly origin: BMPoint;

    /**
     * Returns a copy.
     * @return The copy.
     */
    copy(): BMRect;
}
`
	assert.Equal(t, want, out)
}

func TestGenerateWithPrelude(t *testing.T) {
	out, err := Generate("")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "declare type int = number;\n"))
}

func TestGenerateModule(t *testing.T) {
	out, err := Generate(source, WithModule(), WithoutPrelude())
	require.NoError(t, err)
	assert.Contains(t, out, "export function BMRectMake(")
	assert.Contains(t, out, "export class BMRect {")
	assert.NotContains(t, out, "declare ")
}

func TestGenerateConcurrently(t *testing.T) {
	want, err := Generate(source)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Generate(source)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestExtract(t *testing.T) {
	table := Extract(source)
	assert.Equal(t, 1, table.Globals.Len())
	require.NotNil(t, table.Section("BMRect"))
	assert.Len(t, table.Section("BMRect").Members(), 2)
}
