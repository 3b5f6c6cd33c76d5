// Package oasplit extracts the components.schemas section of an OpenAPI
// document into standalone JSON Schema files, one per named entry. Each
// output document is the source schema layered over a synthesized
// $schema/title header; the source wins on key collision. No cross-entry
// relationship inference and no reference resolution happen here.
package oasplit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaDraft is the $schema identifier stamped on every split file that
// does not declare its own.
const SchemaDraft = "https://json-schema.org/draft/2020-12/schema"

// Options configures a split run.
type Options struct {
	// Validate compiles each written file as a 2020-12 JSON Schema and
	// reports the ones that fail. Failures are warnings, not errors: a
	// split file may carry a $ref to a sibling entry that no longer
	// resolves standalone.
	Validate bool
}

// Result lists what one split run produced.
type Result struct {
	Files   []string // paths written, in emission order
	Invalid []string // subset of Files that failed schema compilation
}

// Load reads and parses an OpenAPI document, in YAML or JSON form. The
// document is not semantically validated; this is a structural parse only.
func Load(path string) (*openapi3.T, error) {
	log.Printf("reading OpenAPI document: %s", path)

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading OpenAPI document: %w", err)
	}

	log.Print("successfully parsed OpenAPI document")
	return doc, nil
}

// Split writes one JSON Schema file per entry under components.schemas.
// Entries are processed in sorted name order for consistent output; a
// document with no component schemas produces zero files and no error.
func Split(doc *openapi3.T, outDir string, opts Options) (Result, error) {
	var res Result

	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		log.Print("warning: no schemas found in OpenAPI components")
		return res, nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return res, fmt.Errorf("failed to create output directory: %w", err)
	}

	names := collectSchemaNames(doc.Components.Schemas)
	log.Printf("splitting %d component schemas", len(names))

	for _, name := range names {
		body, err := wrapSchema(name, doc.Components.Schemas[name])
		if err != nil {
			return res, fmt.Errorf("failed to build JSON Schema for %s: %w", name, err)
		}

		path := filepath.Join(outDir, name+".json")
		if err := os.WriteFile(path, body, 0644); err != nil {
			return res, fmt.Errorf("failed to write schema file: %w", err)
		}
		log.Printf("schema %s written to %s", name, path)
		res.Files = append(res.Files, path)

		if opts.Validate {
			if err := compileSchema(path, body); err != nil {
				log.Printf("warning: %s does not compile standalone: %v", path, err)
				res.Invalid = append(res.Invalid, path)
			}
		}
	}

	return res, nil
}

// wrapSchema layers the component schema over the synthesized two-field
// header. The header only fills keys the source leaves unset, so a schema
// declaring its own title or $schema keeps it.
func wrapSchema(name string, ref *openapi3.SchemaRef) ([]byte, error) {
	raw, err := json.Marshal(ref)
	if err != nil {
		return nil, err
	}

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, err
	}
	if _, ok := body["$schema"]; !ok {
		body["$schema"] = SchemaDraft
	}
	if _, ok := body["title"]; !ok {
		body["title"] = name
	}

	return json.MarshalIndent(body, "", "  ")
}

// compileSchema checks that a written file is a loadable 2020-12 schema.
func compileSchema(path string, data []byte) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(path, bytes.NewReader(data)); err != nil {
		return err
	}
	_, err := compiler.Compile(path)
	return err
}

// collectSchemaNames returns the component schema names in sorted order.
func collectSchemaNames(schemas openapi3.Schemas) []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
