package billiards

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TableType tags a table shape, e.g. "rectangle" or "lorentz".
type TableType string

var (
	ErrUnknownTable = errors.New("unknown table type")
	ErrNotResizable = errors.New("table is not resizable")
)

//go:embed tables.yaml
var defaultTables []byte

// SizeRange bounds the width and height of a resizable table.
type SizeRange struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// TableSpec is one row of the table catalog: everything that differs
// between table shapes.
type TableSpec struct {
	Type       TableType  `yaml:"type" json:"type"`
	Label      string     `yaml:"label" json:"label"`
	PreviewKey string     `yaml:"preview" json:"preview"`
	Engine     string     `yaml:"engine" json:"engine"`
	Domain     Domain     `yaml:"domain" json:"domain"`
	Resize     *SizeRange `yaml:"resize,omitempty" json:"resize,omitempty"`
}

// Resizable reports whether the table's rectangle may be resized.
func (t TableSpec) Resizable() bool {
	return t.Resize != nil && t.Domain.Shape == ShapeRectangular
}

// ResizedDomain returns the table's domain with a new size, or an error when
// the table cannot be resized or the size is out of range.
func (t TableSpec) ResizedDomain(width, height float64) (Domain, error) {
	if !t.Resizable() {
		return Domain{}, fmt.Errorf("%w: %s", ErrNotResizable, t.Type)
	}
	for _, v := range []float64{width, height} {
		if v < t.Resize.Min || v > t.Resize.Max {
			return Domain{}, fmt.Errorf("size %gx%g outside %g..%g", width, height, t.Resize.Min, t.Resize.Max)
		}
	}
	return Rectangular(width, height), nil
}

// Catalog is the ordered set of available table types.
type Catalog struct {
	tables []TableSpec
	byType map[TableType]TableSpec
}

type catalogFile struct {
	Tables []TableSpec `yaml:"tables"`
}

// LoadCatalog reads the table catalog from path, or the built-in catalog when
// path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultTables
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read tables: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML table catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tables: %w", err)
	}
	if len(f.Tables) == 0 {
		return nil, errors.New("parse tables: no tables defined")
	}

	c := &Catalog{byType: make(map[TableType]TableSpec, len(f.Tables))}
	for _, t := range f.Tables {
		if t.Type == "" {
			return nil, errors.New("parse tables: table without type")
		}
		if _, dup := c.byType[t.Type]; dup {
			return nil, fmt.Errorf("parse tables: duplicate table %q", t.Type)
		}
		if err := t.Domain.Validate(); err != nil {
			return nil, fmt.Errorf("parse tables: %s: %w", t.Type, err)
		}
		if t.Engine == "" {
			t.Engine = string(t.Type)
		}
		if t.Resize != nil {
			if t.Domain.Shape != ShapeRectangular || t.Resize.Min <= 0 || t.Resize.Min > t.Resize.Max {
				return nil, fmt.Errorf("parse tables: %s: invalid resize range", t.Type)
			}
		}
		c.tables = append(c.tables, t)
		c.byType[t.Type] = t
	}
	return c, nil
}

// Lookup returns the definition of a table type.
func (c *Catalog) Lookup(t TableType) (TableSpec, error) {
	spec, ok := c.byType[t]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w: %q", ErrUnknownTable, t)
	}
	return spec, nil
}

// Tables returns the catalog in declaration order.
func (c *Catalog) Tables() []TableSpec {
	out := make([]TableSpec, len(c.tables))
	copy(out, c.tables)
	return out
}
