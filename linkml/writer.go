package linkml

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// OutputPath resolves the output argument: a path ending in .puml is an
// explicit file target, anything else is a directory and the filename is
// derived from the input's base name.
func OutputPath(inputPath, outArg string) string {
	if strings.EqualFold(filepath.Ext(outArg), ".puml") {
		return outArg
	}
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outArg, stem+".puml")
}

// WriteDiagram writes the diagram body to path, creating parent directories
// as needed and overwriting any existing file.
func WriteDiagram(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return fmt.Errorf("failed to write diagram file: %w", err)
	}
	log.Printf("diagram written to %s", path)
	return nil
}
