package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/tridentsx/schemaconv/linkml"
	"github.com/tridentsx/schemaconv/oasplit"
)

// maxSummaryItems caps the per-item summary lines printed after a run.
const maxSummaryItems = 200

const usage = `Usage:
  schemaconv -linkml schema.yaml -out diagram.puml [-title text]
  OR
  schemaconv -oas openapi.yaml -out schemas/ [-skip-validate]`

func main() {
	// Configure logging
	log.SetFlags(log.Ldate | log.Ltime | log.LUTC)
	log.SetPrefix("schemaconv: ")

	// Define command-line flags
	linkmlFile := flag.String("linkml", "", "Path to the LinkML schema file")
	oasFile := flag.String("oas", "", "Path to the OpenAPI document")
	outArg := flag.String("out", "", "Output .puml file or directory")
	title := flag.String("title", "", "Diagram title (default: derived from the output file name)")
	skipValidate := flag.Bool("skip-validate", false, "Skip compiling the emitted JSON Schema files")
	flag.Parse()

	// Exactly one of -linkml or -oas, and -out is always required.
	if (*linkmlFile != "" && *oasFile != "") || (*linkmlFile == "" && *oasFile == "") || *outArg == "" {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if *linkmlFile != "" {
		processLinkML(*linkmlFile, *outArg, *title)
	} else {
		processOpenAPI(*oasFile, *outArg, *skipValidate)
	}
}

// processLinkML handles LinkML to PlantUML conversion
func processLinkML(inPath, outArg, title string) {
	outPath := linkml.OutputPath(inPath, outArg)
	if title == "" {
		title = "Auto-generated diagram from " + filepath.Base(outPath)
	}

	schema, err := linkml.Load(inPath)
	if err != nil {
		log.Fatalf("Failed to load LinkML schema: %v", err)
	}

	body, res := linkml.Generate(schema, title)

	if err := linkml.WriteDiagram(outPath, body); err != nil {
		log.Fatalf("Failed to write diagram: %v", err)
	}

	fmt.Println("--- schemaconv summary ---")
	fmt.Printf("Classes emitted: %d\n", len(res.Classes))
	for _, name := range capped(res.Classes) {
		fmt.Printf(" - %s\n", name)
	}
	fmt.Printf("Relations emitted: %d\n", len(res.Relations))
	for _, rel := range capped(res.Relations) {
		fmt.Printf(" - %s\n", rel)
	}
	fmt.Printf("Wrote: %s\n", outPath)
}

// processOpenAPI handles splitting an OpenAPI document into JSON Schema files
func processOpenAPI(inPath, outDir string, skipValidate bool) {
	doc, err := oasplit.Load(inPath)
	if err != nil {
		log.Fatalf("Failed to load OpenAPI document: %v", err)
	}

	res, err := oasplit.Split(doc, outDir, oasplit.Options{Validate: !skipValidate})
	if err != nil {
		log.Fatalf("Failed to split schemas: %v", err)
	}

	fmt.Println("--- schemaconv summary ---")
	fmt.Printf("Schemas written: %d\n", len(res.Files))
	for _, path := range capped(res.Files) {
		fmt.Printf(" - %s\n", path)
	}
	if len(res.Invalid) > 0 {
		fmt.Printf("Files failing standalone schema compilation: %d\n", len(res.Invalid))
		for _, path := range capped(res.Invalid) {
			fmt.Printf(" - %s\n", path)
		}
	}
}

// capped limits a summary list to maxSummaryItems entries.
func capped(items []string) []string {
	if len(items) > maxSummaryItems {
		return items[:maxSummaryItems]
	}
	return items
}
