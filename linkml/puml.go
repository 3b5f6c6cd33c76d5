package linkml

import (
	"fmt"
	"log"
	"strings"
)

// Rendering limits carried over from the generator's display conventions.
const (
	maxEnumValues      = 20
	maxDescriptionLen  = 80
	identifierMarker   = "+"
	plainMarker        = "-"
	multivaluedSuffix  = "[]"
	manyMultiplicity   = `"0..*"`
	singleMultiplicity = `"1"`
)

// Result summarizes one diagram generation for reporting: every class
// emitted, every relation line, and nothing else.
type Result struct {
	Classes   []string
	Relations []string
}

// Generate renders the normalized schema as a PlantUML class diagram.
// Every class in the table is emitted exactly once, in declaration order,
// even with zero slots. The output is deterministic: identical input
// produces byte-identical text.
func Generate(schema *Schema, title string) (string, Result) {
	log.Print("generating PlantUML diagram")

	var b strings.Builder
	var res Result

	b.WriteString("@startuml\n")
	fmt.Fprintf(&b, "title %s\n", title)
	b.WriteString("skinparam classAttributeIconSize 0\n\n")

	if len(schema.Enums) > 0 {
		b.WriteString("package \"Enums\" {\n")
		for _, enum := range schema.Enums {
			fmt.Fprintf(&b, "class %s <<enumeration>> {\n", sanitizeName(enum.Name))
			for i, v := range enum.Values {
				if i == maxEnumValues {
					break
				}
				fmt.Fprintf(&b, "  %s\n", v)
			}
			b.WriteString("}\n")
		}
		b.WriteString("}\n\n")
	}

	for _, class := range schema.Classes {
		writeClass(&b, schema, class)
		b.WriteString("\n")
		res.Classes = append(res.Classes, class.Name)
	}

	for _, rel := range schema.Relations() {
		line := relationLine(rel)
		b.WriteString(line + "\n")
		res.Relations = append(res.Relations, line)
	}
	if len(res.Relations) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("@enduml\n")

	log.Printf("emitted %d classes and %d relations", len(res.Classes), len(res.Relations))
	return b.String(), res
}

// writeClass emits one class block. Slots the class references but the slot
// table never defines render via the synthesized default slot, so a class
// always renders all of its declared attribute lines.
func writeClass(b *strings.Builder, schema *Schema, class Class) {
	fmt.Fprintf(b, "class %s {\n", sanitizeName(class.Name))
	for _, name := range class.SlotNames {
		slot := schema.Slot(name)

		marker := plainMarker
		if slot.Identifier {
			marker = identifierMarker
		}
		suffix := ""
		if slot.Multivalued {
			suffix = multivaluedSuffix
		}
		rng := slot.Range.Name
		if slot.Range.IsClass {
			rng = sanitizeName(rng)
		}
		fmt.Fprintf(b, "  %s %s : %s%s\n", marker, slot.Name, rng, suffix)

		if slot.Description != "" {
			fmt.Fprintf(b, "  // %s\n", truncate(slot.Description, maxDescriptionLen))
		}
	}
	b.WriteString("}\n")
}

// relationLine renders one edge with its multiplicity on the target end.
func relationLine(rel Relation) string {
	mult := singleMultiplicity
	if rel.Multivalued {
		mult = manyMultiplicity
	}
	return fmt.Sprintf("%s --> %s %s : %s",
		sanitizeName(rel.Owner), mult, sanitizeName(rel.Target), rel.Slot)
}

// sanitizeName makes a declared name safe as a PlantUML identifier. Range
// resolution happens on raw names before this runs.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ReplaceAll(name, "-", "_")
}

// truncate cuts s to at most n runes. No ellipsis; the cut is not
// word-boundary aware.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
