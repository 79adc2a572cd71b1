package extract

import (
	"strings"
	"testing"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

func TestIndexOfClosingScope(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		from, open int
		want       int
	}{
		{name: "single level", text: "a { b } c }", from: 0, open: 1, want: 10},
		{name: "nested", text: "{ { } }", from: 1, open: 1, want: 6},
		{name: "not found", text: "{ {", from: 1, open: 1, want: -1},
		{name: "no open scopes", text: "{ }", from: 0, open: 0, want: 2},
		{name: "from past end", text: "}", from: 5, open: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IndexOfClosingScope(tt.text, tt.from, tt.open); got != tt.want {
				t.Errorf("IndexOfClosingScope(%q, %d, %d) = %d, want %d", tt.text, tt.from, tt.open, got, tt.want)
			}
		})
	}
}

func TestIndexOfClosingScopeDepthOne(t *testing.T) {
	bodies := []string{"", "x", "return this._frame;", "if (a) return b;\n"}
	for _, body := range bodies {
		text := body + "}"
		if got := IndexOfClosingScope(text, 0, 1); got != strings.IndexByte(text, '}') {
			t.Errorf("IndexOfClosingScope(%q) = %d", text, got)
		}
	}
}

func TestResolveAccess(t *testing.T) {
	tests := []struct {
		name string
		text string
		want api.Access
	}{
		{
			name: "getter and setter",
			text: "_frame: null, // <BMRect>\n\n\tget frame() {\n\t\treturn this._frame;\n\t},\n\n\tset frame(frame) {\n\t\tthis._frame = frame;\n\t},\n",
			want: api.ReadWrite,
		},
		{
			name: "getter only",
			text: "_frame: null, // <BMRect>\n\tget frame() {\n\t\tif (x) { return y; }\n\t\treturn this._frame;\n\t},\n\tget bounds() {\n\t}\n",
			want: api.ReadOnly,
		},
		{
			name: "setter only",
			text: "_frame: null, // <BMRect>\n\n\tset frame(frame) {\n\t\tthis._frame = frame;\n\t},\n",
			want: api.WriteOnly,
		},
		{
			name: "no accessor",
			text: "_frame: null, // <BMRect>\n\n\t_bounds: null,\n",
			want: api.PrivateOnly,
		},
		{
			name: "accessor for another name",
			text: "_frame: null, // <BMRect>\n\tget bounds() {\n\t}\n",
			want: api.PrivateOnly,
		},
		{
			name: "end of text",
			text: "_frame: null, // <BMRect>",
			want: api.PrivateOnly,
		},
		{
			name: "unterminated getter",
			text: "_frame: null, // <BMRect>\n\tget frame() {\n\t\treturn this._frame;\n",
			want: api.ReadOnly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAccess(tt.text, lineEnd(tt.text, 0), "frame"); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGetterAccess(t *testing.T) {
	readWrite := "get frame() { return this._frame; }\nset frame(f) { this._frame = f; }"
	if got := GetterAccess(readWrite, "frame"); got != api.ReadWrite {
		t.Errorf("expected readwrite, got %v", got)
	}
	readOnly := "get frame() { return this._frame; }\nget bounds() {}"
	if got := GetterAccess(readOnly, "frame"); got != api.ReadOnly {
		t.Errorf("expected readonly, got %v", got)
	}
}
