package qr

import (
	"fmt"
	"strings"
)

// svg writes the matrix as a square SVG: an opaque white backdrop and one
// path of horizontal dark runs, in module units scaled to size.
func svg(modules [][]bool, size int) []byte {
	n := len(modules)

	var d strings.Builder
	for y, row := range modules {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			run := 1
			for x+run < len(row) && row[x+run] {
				run++
			}
			fmt.Fprintf(&d, "M%d %dh%dv1h-%dz", x, y, run, run)
			x += run
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size, n, n)
	fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="#FFFFFF"/>`, n, n)
	if d.Len() > 0 {
		fmt.Fprintf(&b, `<path fill="#000000" d="%s"/>`, d.String())
	}
	b.WriteString(`</svg>`)
	return []byte(b.String())
}
