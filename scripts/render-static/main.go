package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	formflow "github.com/goliatone/go-formflow"
)

func main() {
	outputDir := flag.String("output", filepath.Join("dist", "static"), "directory for the rendered pages")
	flag.Parse()

	ctx := context.Background()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output dir: %v\n", err)
		os.Exit(1)
	}

	pages := map[string]string{
		formflow.FlowBooking: "booking.html",
		formflow.FlowContact: "contact.html",
	}

	generator := formflow.New()

	for operationID, fileName := range pages {
		html, err := generator.Generate(ctx, formflow.Request{OperationID: operationID})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to render %s: %v\n", operationID, err)
			os.Exit(1)
		}

		outputPath := filepath.Join(*outputDir, fileName)
		if err := os.WriteFile(outputPath, html, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("✓ Rendered %s (%d bytes) → %s\n", operationID, len(html), outputPath)
	}
}
