// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command sinpigen generates the quarter-wave sin(x·π) lookup table used by
// package fixed.
//
// Usage:
//
//	sinpigen [-f fractional-bits] [-o output.go] [-p package]
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"math"
	"os"
)

func main() {
	var (
		bits   = flag.Int("f", 8, "fractional bits of the fixed-point format")
		output = flag.String("o", "sinpi_table.go", "output file")
		pkg    = flag.String("p", "fixed", "package name")
	)
	flag.Parse()

	if *bits < 2 || *bits > 15 {
		log.Fatalf("sinpigen: fractional bits %d out of range [2, 15]", *bits)
	}

	src, err := generate(*pkg, *bits)
	if err != nil {
		log.Fatalf("sinpigen: %v", err)
	}
	if err := os.WriteFile(*output, src, 0o644); err != nil {
		log.Fatalf("sinpigen: %v", err)
	}
}

// table returns round(sin(k·π/2^bits)·2^bits), clamped to 2^bits-1, for k
// in [0, 2^(bits-1)]: one quarter of a sine period.
func table(bits int) []int {
	steps := 1 << bits
	values := make([]int, steps/2+1)
	for k := range values {
		v := int(math.Round(math.Sin(float64(k) * math.Pi / float64(steps)) * float64(steps)))
		values[k] = min(v, steps-1)
	}
	return values
}

func generate(pkg string, bits int) ([]byte, error) {
	values := table(bits)

	elem := "uint8"
	if bits > 8 {
		elem = "uint16"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by sinpigen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "// TableSize is the number of entries in the quarter-wave sine table.\n")
	fmt.Fprintf(&b, "const TableSize = %d\n\n", len(values))
	fmt.Fprintf(&b, "// sinpiTable holds round(sin(k·π/%d)·%d), clamped to %d, for k in [0, %d].\n",
		1<<bits, 1<<bits, 1<<bits-1, len(values)-1)
	fmt.Fprintf(&b, "var sinpiTable = [TableSize]%s{\n", elem)
	for i, v := range values {
		if i%8 == 0 {
			b.WriteByte('\t')
		}
		fmt.Fprintf(&b, "0x%02X,", v)
		if i%8 == 7 || i == len(values)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteString("}\n")

	return format.Source(b.Bytes())
}
