// Command matinspect dumps the variable tree of a MAT-file: every array's
// name, class, dimensions and struct fields. It exists to answer "what is
// actually inside this archive" when a conversion fails.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"battcli/internal/matfile"
)

// maxElems caps how many elements of a struct or cell array are expanded;
// cycle lists run to hundreds of near-identical records.
var maxElems = flag.Int("elems", 3, "max struct/cell elements to expand per array")

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: matinspect [-elems N] <file.mat>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := matfile.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", path)
	for _, name := range f.VarNames() {
		v, _ := f.Var(name)
		dump(v, name, 1)
	}
}

// dump prints one array and recurses into struct fields and cell elements.
func dump(a *matfile.Array, label string, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s: %s %s\n", indent, label, a.Class, dimString(a.Dims))

	switch a.Class {
	case matfile.ClassStruct:
		for elem := 0; elem < a.NumElements() && elem < *maxElems; elem++ {
			for fi := 0; fi < a.NumField(); fi++ {
				field, err := a.Field(elem, fi)
				if err != nil {
					fmt.Printf("%s  [%d].%s: error: %v\n", indent, elem, a.FieldName(fi), err)
					continue
				}
				dump(field, fmt.Sprintf("[%d].%s", elem, a.FieldName(fi)), depth+1)
			}
		}
		if a.NumElements() > *maxElems {
			fmt.Printf("%s  ... %d more elements\n", indent, a.NumElements()-*maxElems)
		}
	case matfile.ClassCell:
		for i := 0; i < a.NumElements() && i < *maxElems; i++ {
			elem, err := a.Cell(i)
			if err != nil {
				fmt.Printf("%s  {%d}: error: %v\n", indent, i, err)
				continue
			}
			dump(elem, fmt.Sprintf("{%d}", i), depth+1)
		}
		if a.NumElements() > *maxElems {
			fmt.Printf("%s  ... %d more elements\n", indent, a.NumElements()-*maxElems)
		}
	case matfile.ClassChar:
		fmt.Printf("%s  %q\n", indent, a.String())
	default:
		if a.Complex {
			fmt.Printf("%s  complex, %d values\n", indent, len(a.Floats()))
		} else if a.IsScalar() {
			if v, err := a.Float(); err == nil {
				fmt.Printf("%s  = %g\n", indent, v)
			}
		}
	}
}

func dimString(dims []int) string {
	parts := make([]string, len(dims))
	for i, d := range dims {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, "x")
}
