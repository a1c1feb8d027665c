// Command riskcalc scores a water-borne disease risk assessment from the
// terminal and prints the reference catalogs and education content.
//
// Usage:
//
//	riskcalc score --symptom diarrhea --symptom fever --water river --rainfall heavy
//	riskcalc catalog
//	riskcalc education --lang as --topic warning
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "riskcalc:", err)
		os.Exit(1)
	}
}
