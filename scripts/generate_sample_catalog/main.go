package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"homebite/internal/sample"
)

// Writes the built-in sample catalogue to disk so it can be edited and
// served through SAMPLE_CATALOG_PATH or uploaded to the S3 fixture bucket.
// A ".gz" suffix produces a gzip-compressed file.
func main() {
	out := flag.String("out", "data/catalog/catalog.json.gz", "output file")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	catalog := sample.Default(time.Now())
	if err := catalog.Validate(); err != nil {
		log.Fatalf("Built-in catalogue is invalid: %v", err)
	}

	file, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer file.Close()

	if err := catalog.Encode(file, strings.HasSuffix(*out, ".gz")); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d dishes, %d ratings and %d orders\n",
		*out, len(catalog.Dishes), len(catalog.Ratings), len(catalog.Orders))
}
