package equipment

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/weapons.yaml
var weaponsYAML []byte

type catalogFile struct {
	Weapons []*Weapon `yaml:"weapons"`
}

// Catalog is the set of weapon definitions attacks can reference
type Catalog struct {
	weapons map[string]*Weapon
}

// NewCatalog builds a catalog from definitions; the unarmed strike is always present
func NewCatalog(weapons []*Weapon) *Catalog {
	c := &Catalog{weapons: make(map[string]*Weapon, len(weapons)+1)}
	c.weapons[UnarmedKey] = Unarmed()
	for _, w := range weapons {
		if w == nil || w.Key == "" {
			continue
		}
		c.weapons[NormalizeKey(w.Key)] = w
	}
	return c
}

// LoadCatalog decodes a weapons YAML document
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode weapon catalog: %w", err)
	}
	return NewCatalog(file.Weapons), nil
}

// DefaultCatalog returns the embedded standard weapon list
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(weaponsYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Get looks a weapon up by key or display name
func (c *Catalog) Get(key string) (*Weapon, bool) {
	w, ok := c.weapons[NormalizeKey(key)]
	return w, ok
}

// Keys returns all weapon keys in sorted order
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.weapons))
	for k := range c.weapons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
