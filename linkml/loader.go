package linkml

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrEmptySchema reports a document that parsed to nothing meaningful: an
// empty file, a bare null, or a top level that is not a mapping. A schema
// with zero classes is not this error.
var ErrEmptySchema = errors.New("empty or invalid schema")

// Load reads a LinkML schema file and normalizes it into flat class, slot,
// and enum tables. The yaml.Node API is used instead of plain maps so that
// declaration order survives into the tables; the diagram output depends on
// it. JSON input works too, since YAML is a superset.
func Load(path string) (*Schema, error) {
	log.Printf("reading LinkML schema file: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	log.Print("parsing LinkML schema")
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing schema file: %w", err)
	}

	doc := documentMapping(&root)
	if doc == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptySchema)
	}

	schema := normalize(doc)
	log.Printf("normalized %d classes, %d slots, %d enums",
		len(schema.Classes), len(schema.Slots), len(schema.Enums))
	return schema, nil
}

// normalize extracts the classes, slots, and enums tables from the parsed
// document. Absent or null sections become empty tables; absent optional
// fields take their zero-value defaults rather than failing.
func normalize(doc *yaml.Node) *Schema {
	schema := &Schema{
		classIndex: make(map[string]int),
		slotIndex:  make(map[string]int),
	}

	mapEntries(mapGet(doc, "classes"), func(name string, cdef *yaml.Node) {
		class := Class{Name: name}
		for _, item := range seqItems(mapGet(cdef, "slots")) {
			class.SlotNames = append(class.SlotNames, scalarString(item))
		}
		schema.classIndex[name] = len(schema.Classes)
		schema.Classes = append(schema.Classes, class)
	})

	mapEntries(mapGet(doc, "slots"), func(name string, sdef *yaml.Node) {
		slot := Slot{Name: name, Range: Range{Name: "string"}}
		if r := scalarString(mapGet(sdef, "range")); r != "" {
			slot.Range.Name = r
		}
		slot.Multivalued = scalarBool(mapGet(sdef, "multivalued"))
		slot.Identifier = scalarBool(mapGet(sdef, "identifier"))
		slot.Description = scalarString(mapGet(sdef, "description"))
		schema.slotIndex[name] = len(schema.Slots)
		schema.Slots = append(schema.Slots, slot)
	})

	mapEntries(mapGet(doc, "enums"), func(name string, edef *yaml.Node) {
		enum := Enum{Name: name}
		pv := mapGet(edef, "permissible_values")
		if pv != nil && pv.Kind == yaml.MappingNode {
			mapEntries(pv, func(value string, _ *yaml.Node) {
				enum.Values = append(enum.Values, value)
			})
		} else {
			for _, item := range seqItems(pv) {
				enum.Values = append(enum.Values, scalarString(item))
			}
		}
		schema.Enums = append(schema.Enums, enum)
	})

	// Resolve each slot's range against the class table. Exact string
	// match only: no case folding, no prefix expansion.
	for i := range schema.Slots {
		if _, ok := schema.classIndex[schema.Slots[i].Range.Name]; ok {
			schema.Slots[i].Range.IsClass = true
		}
	}

	return schema
}

// documentMapping unwraps the document node and returns its top-level
// mapping, or nil if the document is empty, null, or not a mapping.
func documentMapping(root *yaml.Node) *yaml.Node {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil
	}
	return top
}

// mapEntries calls fn for each key/value pair of a mapping node in
// declaration order. Nil and non-mapping nodes are treated as empty.
func mapEntries(n *yaml.Node, fn func(key string, val *yaml.Node)) {
	if n == nil || n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		fn(n.Content[i].Value, n.Content[i+1])
	}
}

// mapGet returns the value node for a key in a mapping, or nil.
func mapGet(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// seqItems returns the items of a sequence node, or nil for anything else.
func seqItems(n *yaml.Node) []*yaml.Node {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	return n.Content
}

func scalarString(n *yaml.Node) string {
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return n.Value
	}
	return s
}

func scalarBool(n *yaml.Node) bool {
	if n == nil || n.Kind != yaml.ScalarNode {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		return false
	}
	return b
}
