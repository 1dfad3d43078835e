package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/platebench/platebench/internal/design"
	"github.com/platebench/platebench/internal/export"
	"github.com/platebench/platebench/internal/selection"
	"github.com/platebench/platebench/internal/session"
)

// plate-design generates a serial dilution layout from the command line
// and prints the resulting layout document.
func main() {
	var plateType string
	var rows, cols int
	var wellsArg string
	var compound string
	var start, factor float64
	var steps int
	var unit string
	var outPath string

	flag.StringVar(&plateType, "plate", "96-well", "plate type label")
	flag.IntVar(&rows, "rows", 8, "plate rows")
	flag.IntVar(&cols, "cols", 12, "plate columns")
	flag.StringVar(&wellsArg, "wells", "", "target wells, e.g. \"A1-A8\" or \"A1,B1,C1\"")
	flag.StringVar(&compound, "compound", "", "compound name")
	flag.Float64Var(&start, "start", 100, "starting concentration")
	flag.Float64Var(&factor, "factor", 2, "dilution factor between steps")
	flag.IntVar(&steps, "steps", 8, "number of dilution steps")
	flag.StringVar(&unit, "unit", "µM", "concentration unit")
	flag.StringVar(&outPath, "out", "", "output path (defaults to stdout)")
	flag.Parse()

	if compound == "" {
		log.Fatal("a compound must be provided with -compound")
	}
	if wellsArg == "" {
		log.Fatal("target wells must be provided with -wells")
	}

	s := session.New()
	if _, err := s.NewPlate(plateType, rows, cols); err != nil {
		log.Fatalf("create plate: %v", err)
	}
	p, err := s.CurrentPlate()
	if err != nil {
		log.Fatalf("current plate: %v", err)
	}

	wells, err := selection.Parse(wellsArg, rows, cols)
	if err != nil {
		log.Fatalf("parse wells: %v", err)
	}

	d := design.SerialDilution{
		Compound: compound,
		Start:    start,
		Factor:   factor,
		Steps:    steps,
		Unit:     unit,
	}
	if err := d.Apply(p, wells); err != nil {
		log.Fatalf("apply dilution: %v", err)
	}

	data, err := export.JSON(p)
	if err != nil {
		log.Fatalf("encode layout: %v", err)
	}
	if outPath == "" {
		os.Stdout.Write(data)
		fmt.Println()
		return
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("write layout: %v", err)
	}
	fmt.Printf("wrote %s\n", outPath)
}
