package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/platebench/platebench/internal/export"
	"github.com/platebench/platebench/internal/palette"
	"github.com/platebench/platebench/internal/render"
)

// plate-export converts a saved layout document into one of the other
// export formats without running the server.
func main() {
	var inPath string
	var outPath string
	var format string
	var themeName string

	flag.StringVar(&inPath, "in", "", "path to a layout JSON document")
	flag.StringVar(&outPath, "out", "", "output path (defaults to stdout for text formats)")
	flag.StringVar(&format, "format", "csv", "output format: csv, report, sqlite, png, html")
	flag.StringVar(&themeName, "theme", "nature", "color theme for figure formats")
	flag.Parse()

	if inPath == "" {
		log.Fatal("an input layout must be provided with -in")
	}

	data, err := os.ReadFile(inPath)
	if err != nil {
		log.Fatalf("read layout: %v", err)
	}
	p, err := export.FromJSON(data)
	if err != nil {
		log.Fatalf("parse layout: %v", err)
	}

	theme, ok := palette.ThemeByName(themeName)
	if !ok {
		log.Fatalf("unknown theme %q", themeName)
	}

	switch format {
	case "csv":
		out, err := export.CSV(p)
		if err != nil {
			log.Fatalf("csv export: %v", err)
		}
		writeOutput(outPath, []byte(out))
	case "report":
		writeOutput(outPath, []byte(export.Report(p)))
	case "sqlite":
		if outPath == "" {
			log.Fatal("sqlite export requires -out")
		}
		if err := export.WriteSQLite(p, outPath); err != nil {
			log.Fatalf("sqlite export: %v", err)
		}
		fmt.Printf("wrote %s\n", outPath)
	case "png":
		if outPath == "" {
			log.Fatal("png export requires -out")
		}
		if err := render.SavePNG(p, theme, outPath); err != nil {
			log.Fatalf("png export: %v", err)
		}
		fmt.Printf("wrote %s\n", outPath)
	case "html":
		f := os.Stdout
		if outPath != "" {
			f, err = os.Create(outPath)
			if err != nil {
				log.Fatalf("create output: %v", err)
			}
			defer f.Close()
		}
		if err := render.HTML(f, p, theme); err != nil {
			log.Fatalf("html export: %v", err)
		}
	default:
		log.Fatalf("unknown format %q", format)
	}
}

func writeOutput(path string, data []byte) {
	if path == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Fatalf("write output: %v", err)
	}
	fmt.Printf("wrote %s\n", path)
}
