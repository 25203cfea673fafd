package diag

import (
	"fmt"
	"io"

	"github.com/rocstar-hpc/cmoc/sched"
)

// gdlHeader is the graph-attribute block used for every emitted GDL
// subgraph: title/label are filled in per scheduler, the rest of the
// dialect (node/edge coloring, layout, arrow styling) is carried over
// unchanged as CMOC's one supported GDL style.
const gdlHeader = `graph: { title: "%s" label: "%s"
	display_edge_labels: yes
	layoutalgorithm: tree
	scaling: maxspect
	color: white
	node.color: lightblue
	node.textcolor: black
	node.bordercolor: black
	node.borderwidth: 1
	edge.color: lightblue
	edge.arrowsize: 7
	edge.thickness: 2
	edge.fontname: "helvO08"
	node.label: "no type"
`

// WriteGDL renders s's scheduled action graph as a GDL (Graph Description
// Language) subgraph to w: one node per action in topological order, plus
// one edge per resolved IN port back to its producer. s must already be
// scheduled.
func WriteGDL(w io.Writer, containerName string, s *sched.Scheduler) error {
	title := containerName + "-" + s.Name
	if _, err := fmt.Fprintf(w, gdlHeader, title, title); err != nil {
		return err
	}

	for _, act := range s.Order() {
		if _, err := fmt.Fprintf(w, "node: { title: \"%s\" label: \"%s\" }\n", act.Name(), act.Name()); err != nil {
			return err
		}
	}

	for _, edge := range s.Edges() {
		if _, err := fmt.Fprintf(w,
			"edge: { sourcename: \"%s\" targetname: \"%s\" label: \"%s,%d\" }\n",
			edge.Producer, edge.Consumer, edge.Attr, edge.Idx); err != nil {
			return err
		}
	}

	_, err := fmt.Fprint(w, "}\n")
	return err
}
