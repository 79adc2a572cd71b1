// Package dts is the entry point of the declaration generator: annotated
// source in, TypeScript declaration text out.
package dts

import (
	"bytes"
	"fmt"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/extract"
	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/format"
)

type options struct {
	encoder []format.Option
}

type Option func(*options)

// WithModule emits every top level declaration as an export.
func WithModule() Option {
	return func(o *options) {
		o.encoder = append(o.encoder, format.WithModule())
	}
}

// WithoutPrelude leaves out the built-in aliases and base interfaces.
func WithoutPrelude() Option {
	return func(o *options) {
		o.encoder = append(o.encoder, format.WithoutPrelude())
	}
}

// Extract builds the symbol table of source. Each call runs in its own
// context, so calls may run concurrently.
func Extract(source string) *api.Table {
	return extract.NewContext(source).Run()
}

// Generate extracts source and renders it as a declaration file.
func Generate(source string, opts ...Option) (string, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var buf bytes.Buffer
	if err := format.NewDeclarationEncoder(&buf, o.encoder...).Encode(Extract(source)); err != nil {
		return "", fmt.Errorf("encoding declarations: %w", err)
	}
	return buf.String(), nil
}
