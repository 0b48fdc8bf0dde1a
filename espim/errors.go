package espim

import (
	"fmt"
)

// MissingPropertyError reports a node or triangle referenced by the mesh's
// edges that carries no constitutive property record. It is raised by the
// pre-assembly check, before any geometry work is done.
type MissingPropertyError struct {
	NodeID int // set when properties are attached per-node
	TriaID int // set when properties are attached per-triangle
}

func (e *MissingPropertyError) Error() string {
	if e.NodeID != 0 {
		return fmt.Sprintf("node %d has no constitutive property record", e.NodeID)
	}
	return fmt.Sprintf("triangle %d has no constitutive property record", e.TriaID)
}

// InvalidTopologyError reports an edge whose adjacent-triangle count is not
// 1 or 2. The input mesh itself is malformed; the assembly is aborted.
type InvalidTopologyError struct {
	Node1ID, Node2ID int
	NumTrias         int
}

func (e *InvalidTopologyError) Error() string {
	return fmt.Sprintf("edge (%d,%d) has %d adjacent triangles, want 1 or 2",
		e.Node1ID, e.Node2ID, e.NumTrias)
}
