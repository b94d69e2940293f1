//go:build ignore

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"table-together/internal/catalog"
)

// Writes the built-in menu as a gzipped JSON document that the file and S3
// catalog sources can read. Edit the output to try a custom menu.
func main() {
	out := flag.String("out", "data/catalog.json.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	doc := catalog.DefaultDocument()
	if err := catalog.Encode(file, doc); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d categories, %d foods and %d offers\n",
		*out, len(doc.Categories), len(doc.Foods), len(doc.Offers))
}
