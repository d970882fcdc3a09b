package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bunTree/BrickFast/internal/layout"
	"github.com/bunTree/BrickFast/internal/levels/formats"
)

// Loader handles loading layout packs from a file or directory.
type Loader struct {
	Root string
}

// NewLoader creates a new layout loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Catalog loads every layout under Root and builds a catalog from them.
func (l *Loader) Catalog() (*layout.Catalog, error) {
	layouts, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	c, err := layout.NewCatalog(layouts)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", l.Root, err)
	}
	return c, nil
}

// LoadAll loads Root. A file yields its layouts in file order; a directory is
// scanned recursively and its files are read in lexical path order.
func (l *Loader) LoadAll() ([]layout.Layout, error) {
	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if !info.IsDir() {
		return l.LoadFile(l.Root)
	}

	var paths []string
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sort.Strings(paths)

	var layouts []layout.Layout
	for _, path := range paths {
		loaded, err := l.LoadFile(path)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, loaded...)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("levels: %s: %w", l.Root, layout.ErrEmptyCatalog)
	}
	return layouts, nil
}

// LoadFile loads a single pack file.
func (l *Loader) LoadFile(path string) ([]layout.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	pack, err := parseByExtension(data, ext)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return pack.Layouts, nil
}

// Export writes a catalog to path, choosing the format from its extension.
func Export(c *layout.Catalog, name, path string) error {
	pack := formats.Pack{Name: name, Layouts: c.Layouts()}

	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = formats.MarshalYAML(pack)
	case ".toml":
		data, err = formats.MarshalTOML(pack)
	default:
		return fmt.Errorf("levels: unsupported extension: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("levels: export %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("levels: export %s: %w", path, err)
	}
	return nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Pack, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".toml":
		return formats.ParseTOML(data)
	default:
		return formats.Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
