// Package linkml converts LinkML schema documents into PlantUML class
// diagrams. The loader parses the YAML document and normalizes it into flat
// lookup tables; the emitter walks those tables and produces the diagram
// text. Declaration order from the source document is preserved throughout
// because it determines attribute and relation order in the output.
package linkml

// Schema is the normalized form of a LinkML document: flat tables of
// classes, slots, and enums, each in declaration order.
type Schema struct {
	Classes []Class
	Slots   []Slot
	Enums   []Enum

	classIndex map[string]int
	slotIndex  map[string]int
}

// Class represents one modeled entity.
type Class struct {
	Name      string   // map key in the source document
	SlotNames []string // declared slot order; determines attribute order
}

// Slot represents one field definition. Slots are defined globally and
// referenced by name from classes, so one slot may appear in several
// classes' SlotNames.
type Slot struct {
	Name        string
	Range       Range  // resolved once during normalization
	Multivalued bool   // collection-typed if true
	Identifier  bool   // marks the slot as the entity's display key
	Description string // optional, truncated for display
}

// Range is a slot's declared type, resolved against the class table: either
// a scalar type name or a reference to another class.
type Range struct {
	Name    string
	IsClass bool
}

// Enum represents one enumeration and its permissible values in declared
// order.
type Enum struct {
	Name   string
	Values []string
}

// Relation is a derived edge: a slot whose range names a class produces one
// relation per owning class. Relations are recomputed on every run, never
// stored.
type Relation struct {
	Owner       string
	Target      string
	Slot        string
	Multivalued bool
}

// Class returns the class with the given name.
func (s *Schema) Class(name string) (Class, bool) {
	i, ok := s.classIndex[name]
	if !ok {
		return Class{}, false
	}
	return s.Classes[i], true
}

// Slot returns the slot with the given name. A name absent from the slot
// table yields a synthesized default slot (range "string", no markers), so
// callers never need a defined/undefined distinction.
func (s *Schema) Slot(name string) Slot {
	if i, ok := s.slotIndex[name]; ok {
		return s.Slots[i]
	}
	return Slot{Name: name, Range: Range{Name: "string"}}
}

// Relations computes the derived edges: for every slot whose range names a
// known class, one relation per class that declares that slot. Order is
// slot-table declaration order, then class-table declaration order within
// each slot. Slots referenced by no class produce no relation.
func (s *Schema) Relations() []Relation {
	var rels []Relation
	for _, slot := range s.Slots {
		if !slot.Range.IsClass {
			continue
		}
		for _, class := range s.Classes {
			for _, sn := range class.SlotNames {
				if sn == slot.Name {
					rels = append(rels, Relation{
						Owner:       class.Name,
						Target:      slot.Range.Name,
						Slot:        slot.Name,
						Multivalued: slot.Multivalued,
					})
					break
				}
			}
		}
	}
	return rels
}
