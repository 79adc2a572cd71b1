// Package format renders an extracted symbol table: as a TypeScript
// declaration file, as a tab separated outline, or as JSON.
package format

import (
	"encoding"

	"github.com/BogdanMihaiciuc/BMCoreUI-sub001/api"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(table *api.Table) error
}
