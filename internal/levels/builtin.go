// Package levels loads layout catalogs: the built-in twenty layouts and
// user-supplied packs.
// This package depends on layout but layout does not depend on levels.
package levels

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/bunTree/BrickFast/internal/layout"
	"github.com/bunTree/BrickFast/internal/levels/formats"
)

//go:embed builtin/catalog.yaml
var builtinYAML []byte

var (
	builtinOnce    sync.Once
	builtinCatalog *layout.Catalog
	builtinErr     error
)

// Builtin returns the built-in catalog. It is parsed once and shared; the
// catalog is immutable.
func Builtin() (*layout.Catalog, error) {
	builtinOnce.Do(func() {
		pack, err := formats.ParseYAML(builtinYAML)
		if err != nil {
			builtinErr = fmt.Errorf("levels: builtin catalog: %w", err)
			return
		}
		builtinCatalog, builtinErr = layout.NewCatalog(pack.Layouts)
		if builtinErr != nil {
			builtinErr = fmt.Errorf("levels: builtin catalog: %w", builtinErr)
		}
	})
	return builtinCatalog, builtinErr
}

// MustBuiltin is Builtin for callers that cannot proceed without it.
func MustBuiltin() *layout.Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}
