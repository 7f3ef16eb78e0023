package btree

import (
	"fmt"
	"io"
	"strings"
)

// nodeids hands out DOT node IDs in pre-order.
type nodeids struct {
	max int
}

func (ids *nodeids) alloc() int {
	ids.max++
	return ids.max
}

// ToDot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). label renders a node summary; it may be nil.
func (t *Tree[I, K, S]) ToDot(w io.Writer, label func(S) string) error {
	var b strings.Builder
	b.WriteString("strict digraph {\n")
	b.WriteString("\tnode [fontname=Arial,fontsize=12];\n")
	if t != nil && t.root != nil {
		ids := &nodeids{}
		var nodelist, edgelist strings.Builder
		t.dotNode(t.root, ids, label, &nodelist, &edgelist)
		b.WriteString(nodelist.String())
		b.WriteString(edgelist.String())
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Tree[I, K, S]) dotNode(n treeNode[I, K, S], ids *nodeids, label func(S) string,
	nodes, edges *strings.Builder) int {
	//
	id := ids.alloc()
	lo, hi := n.bounds()
	text := fmt.Sprintf("%d [%v…%v]", n.Size(), lo, hi)
	if label != nil {
		text += "\\n" + label(n.Summary())
	}
	if n.isLeaf() {
		fmt.Fprintf(nodes, "\"%d\" [label=\"%s\",style=filled,shape=box];\n", id, text)
		return id
	}
	fmt.Fprintf(nodes, "\"%d\" [label=\"%s\",style=filled,color=black,fillcolor=\"#a3d7e4\",shape=ellipse];\n", id, text)
	for _, child := range n.(*innerNode[I, K, S]).children {
		childID := t.dotNode(child, ids, label, nodes, edges)
		fmt.Fprintf(edges, "\"%d\" -> \"%d\";\n", id, childID)
	}
	return id
}
