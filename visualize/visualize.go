// Package visualize renders a CallstackRegistry as a graphviz graph:
// one cluster per truncated callstack, one node per base coined at
// that site, colored by strong/weak status. This is the direct
// analogue of the teacher analyzer's goroutine-superlocation graph
// renderer (utils/dot), applied to allocation sites instead of
// goroutine superlocations: build DOT source by hand, then hand it to
// goccy/go-graphviz to parse and render, the same division of labor
// as utils/dot.DotToImage.
package visualize

import (
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/cs-au-dk/heapabs/analysis/callstack"
	"github.com/cs-au-dk/heapabs/analysis/location"
)

// Site is one cluster's worth of input: the truncated callstack and
// the ordered reuse pool coined there.
type Site struct {
	Stack callstack.Callstack
	Pool  []location.BaseID
}

// DOT renders every site's reuse pool as graphviz DOT source, looking
// up each base's current name/validity in the arena.
func DOT(arena *location.Arena, sites []Site) string {
	var b strings.Builder
	b.WriteString("digraph heapabs {\n")
	for i, site := range sites {
		fmt.Fprintf(&b, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&b, "    label=%q;\n", site.Stack.String())

		var prevID string
		for _, id := range site.Pool {
			base := arena.Get(id)
			nodeID := fmt.Sprintf("base_%d_%d", i, id)
			color := "green"
			if base.Validity.Kind == location.Variable && base.Validity.Weak {
				color = "orange"
			}
			fmt.Fprintf(&b, "    %s [label=%q, color=%s];\n", nodeID, base.String(), color)
			if prevID != "" {
				fmt.Fprintf(&b, "    %s -> %s;\n", prevID, nodeID)
			}
			prevID = nodeID
		}
		b.WriteString("  }\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// RenderSVG parses the registry's DOT source and renders it to SVG.
func RenderSVG(arena *location.Arena, sites []Site) ([]byte, error) {
	g := graphviz.New()
	graph, err := graphviz.ParseBytes([]byte(DOT(arena, sites)))
	if err != nil {
		return nil, err
	}
	defer func() {
		graph.Close()
		g.Close()
	}()

	var buf strBuffer
	if err := g.Render(graph, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return buf.data, nil
}

type strBuffer struct {
	data []byte
}

func (b *strBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}
