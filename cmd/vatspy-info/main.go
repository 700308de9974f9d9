// Command vatspy-info loads the VATSpy dataset and prints a summary.
//
// Usage:
//
//	go run ./cmd/vatspy-info [data-file [boundaries-file]]
//
// Without arguments the files are fetched from the upstream
// vatspy-data-project repository.
package main

import (
	"fmt"
	"os"

	vatspy "github.com/viert/go-vatspy-data"
)

func main() {
	opts := []vatspy.Option{}
	if len(os.Args) > 1 {
		opts = append(opts, vatspy.WithDataPath(os.Args[1]))
	}
	if len(os.Args) > 2 {
		opts = append(opts, vatspy.WithBoundariesPath(os.Args[2]))
	}

	data, err := vatspy.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	withGeom := 0
	for _, fir := range data.FIRs {
		if fir.Geom != nil {
			withGeom++
		}
	}

	fmt.Printf("Country codes: %d\n", len(data.Countries))
	fmt.Printf("Airports:      %d\n", len(data.Airports))
	fmt.Printf("FIRs:          %d (%d with boundaries)\n", len(data.FIRs), withGeom)
	fmt.Printf("UIRs:          %d\n", len(data.UIRs))
}
