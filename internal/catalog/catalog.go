// Package catalog loads the read-only performer catalogs behind the Top
// Charts and the Discover page.
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/okian/stagebook/internal/domain/model"
)

//go:embed default.yaml
var defaultYAML []byte

// Catalog holds both performer collections in catalog order.
type Catalog struct {
	TopCharts []model.PerformerStat    `koanf:"top_charts"`
	Discover  []model.PerformerListing `koanf:"discover"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return parse(rawbytes.Provider(defaultYAML), "built-in")
}

// Load reads a YAML catalog from path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return parse(file.Provider(path), path)
}

func parse(p koanf.Provider, name string) (*Catalog, error) {
	k := koanf.New(".")
	if err := k.Load(p, yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, name, err)
	}
	c := &Catalog{}
	if err := k.UnmarshalWithConf("", c, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrLoadCatalog, name, err)
	}
	if c.TopCharts == nil {
		c.TopCharts = []model.PerformerStat{}
	}
	if c.Discover == nil {
		c.Discover = []model.PerformerListing{}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks metric ranges and id uniqueness.
func (c *Catalog) Validate() error {
	seen := map[string]bool{}
	for _, p := range c.TopCharts {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("%w: top_charts id %q missing or duplicated", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true
		if !p.Valid() {
			return fmt.Errorf("%w: top_charts %q has metrics out of range", ErrInvalidCatalog, p.ID)
		}
	}
	seen = map[string]bool{}
	for _, l := range c.Discover {
		if l.ID == "" || seen[l.ID] {
			return fmt.Errorf("%w: discover id %q missing or duplicated", ErrInvalidCatalog, l.ID)
		}
		seen[l.ID] = true
		if l.Price < 0 {
			return fmt.Errorf("%w: discover %q has a negative price", ErrInvalidCatalog, l.ID)
		}
	}
	return nil
}

// Performer looks up a Top Charts performer by id.
func (c *Catalog) Performer(id string) (model.PerformerStat, bool) {
	for _, p := range c.TopCharts {
		if p.ID == id {
			return p, true
		}
	}
	return model.PerformerStat{}, false
}
