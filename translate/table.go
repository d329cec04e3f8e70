package translate

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/richgrov/worldcodec/blocks"
	"github.com/richgrov/worldcodec/format"
)

// Table translates with explicit block mappings. A mapping without
// properties matches every state of its block and carries the properties
// over. Blocks without a mapping fall back to a namespace rewrite.
type Table struct {
	Name string

	toUniversal   map[string]blocks.Block
	fromUniversal map[string]blocks.Block
	fallback      Identity
}

var _ format.Translator = (*Table)(nil)

// Mapping pairs a block of a version with its universal form.
type Mapping struct {
	Version   blocks.Block
	Universal blocks.Block
}

func NewTable(name string, mappings []Mapping) *Table {
	t := &Table{
		Name:          name,
		toUniversal:   make(map[string]blocks.Block, len(mappings)),
		fromUniversal: make(map[string]blocks.Block, len(mappings)),
	}

	for _, m := range mappings {
		t.toUniversal[m.Version.Key()] = m.Universal
		if _, ok := t.fromUniversal[m.Universal.Key()]; !ok {
			t.fromUniversal[m.Universal.Key()] = m.Version
		}
	}
	return t
}

func (t *Table) ToUniversal(b blocks.Block) (blocks.Block, error) {
	if mapped, ok := lookup(t.toUniversal, b); ok {
		return mapped, nil
	}
	return t.fallback.ToUniversal(b)
}

func (t *Table) FromUniversal(b blocks.Block) (blocks.Block, error) {
	if mapped, ok := lookup(t.fromUniversal, b); ok {
		return mapped, nil
	}
	return t.fallback.FromUniversal(b)
}

func (t *Table) String() string {
	return t.Name
}

func lookup(table map[string]blocks.Block, b blocks.Block) (blocks.Block, bool) {
	if mapped, ok := table[b.Key()]; ok {
		return mapped, true
	}

	// State independent mapping
	mapped, ok := table[blocks.NewBlock(b.Namespace, b.BaseName, nil).Key()]
	if !ok {
		return blocks.Block{}, false
	}
	if len(mapped.Properties) == 0 {
		mapped = blocks.NewBlock(mapped.Namespace, mapped.BaseName, b.Properties)
	}
	return mapped, true
}

// tablesDocument is the YAML layout of translation tables:
//
//	translators:
//	  - name: java_1_13
//	    format: anvil
//	    min_version: 1444
//	    max_version: 2529
//	    blocks:
//	      - version: {name: "minecraft:grass_path"}
//	        universal: {name: "universal_minecraft:dirt_path"}
type tablesDocument struct {
	Translators []tableConfig `yaml:"translators"`
}

type tableConfig struct {
	Name       string          `yaml:"name"`
	Format     string          `yaml:"format"`
	MinVersion versionSpec     `yaml:"min_version"`
	MaxVersion versionSpec     `yaml:"max_version"`
	Blocks     []mappingConfig `yaml:"blocks"`
}

type mappingConfig struct {
	Version   blockConfig `yaml:"version"`
	Universal blockConfig `yaml:"universal"`
}

type blockConfig struct {
	Name       string            `yaml:"name"`
	Properties map[string]string `yaml:"properties"`
}

func (c blockConfig) block() (blocks.Block, error) {
	return blocks.ParseBlock(c.Name, c.Properties)
}

// versionSpec accepts a plain number or a list of numbers.
type versionSpec format.Version

func (v *versionSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*v = versionSpec{n}
		return nil
	case yaml.SequenceNode:
		var parts []int
		if err := node.Decode(&parts); err != nil {
			return err
		}
		*v = parts
		return nil
	default:
		return fmt.Errorf("line %d: version must be a number or a list of numbers", node.Line)
	}
}

// ParseTables builds a resolver from a YAML translation table document.
// Entries keep their document order.
func ParseTables(data []byte) (*TableResolver, error) {
	var doc tablesDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid translation tables: %w", err)
	}

	resolver := &TableResolver{}
	for i, tc := range doc.Translators {
		if tc.Format == "" {
			return nil, fmt.Errorf("translator %d (%s) has no format", i, tc.Name)
		}

		mappings := make([]Mapping, len(tc.Blocks))
		for j, mc := range tc.Blocks {
			version, err := mc.Version.block()
			if err != nil {
				return nil, fmt.Errorf("translator %s mapping %d: %w", tc.Name, j, err)
			}
			universal, err := mc.Universal.block()
			if err != nil {
				return nil, fmt.Errorf("translator %s mapping %d: %w", tc.Name, j, err)
			}
			mappings[j] = Mapping{Version: version, Universal: universal}
		}

		resolver.Add(tc.Format, format.Version(tc.MinVersion), format.Version(tc.MaxVersion), NewTable(tc.Name, mappings))
	}

	return resolver, nil
}

func LoadTables(path string) (*TableResolver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	resolver, err := ParseTables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return resolver, nil
}
