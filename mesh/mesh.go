package mesh

import (
	"fmt"

	"github.com/meshfree/espim/laminate"
	"github.com/meshfree/espim/types"
	"github.com/meshfree/espim/utils"
)

/*
Node, Tria and Edge form the adjacency the stiffness assembly consumes: every
edge knows its one (boundary) or two (interior) incident triangles, every
triangle its three corner nodes. Node positions are 3-D; the assembly
projects them onto its own working plane.

Index is the dense degree-of-freedom index slot assigned by the assembler's
node renumbering; it is -1 until assigned.
*/
type Node struct {
	ID    int
	Pos   utils.Vec3
	Index int
	Prop  *laminate.Property
}

type Tria struct {
	ID    int
	Nodes [3]*Node
	Prop  *laminate.Property
}

// Centroid is the triangle midpoint used as a smoothing-domain vertex.
func (t *Tria) Centroid() (c utils.Vec3) {
	c = t.Nodes[0].Pos.Add(t.Nodes[1].Pos).Add(t.Nodes[2].Pos).Scale(1. / 3.)
	return
}

// OppositeNode returns the triangle vertex not lying on the edge (n1, n2),
// or nil if the triangle does not contain that edge.
func (t *Tria) OppositeNode(n1, n2 *Node) *Node {
	var other *Node
	matched := 0
	for _, n := range t.Nodes {
		if n == n1 || n == n2 {
			matched++
		} else {
			other = n
		}
	}
	if matched != 2 {
		return nil
	}
	return other
}

type Edge struct {
	Key   types.EdgeKey
	Nodes [2]*Node
	Trias []*Tria
}

type Mesh struct {
	Nodes []*Node
	Trias []*Tria
	Edges []*Edge // stable, first-seen construction order

	edgeMap map[types.EdgeKey]*Edge
	nodeMap map[int]*Node
}

func newMesh() (m *Mesh) {
	m = &Mesh{
		edgeMap: make(map[types.EdgeKey]*Edge),
		nodeMap: make(map[int]*Node),
	}
	return
}

func (m *Mesh) addNode(id int, pos utils.Vec3) (n *Node, err error) {
	if _, dup := m.nodeMap[id]; dup {
		err = fmt.Errorf("duplicate node ID %d", id)
		return
	}
	n = &Node{ID: id, Pos: pos, Index: -1}
	m.Nodes = append(m.Nodes, n)
	m.nodeMap[id] = n
	return
}

func (m *Mesh) addTria(id int, n1, n2, n3 *Node) (tria *Tria, err error) {
	if n1 == n2 || n2 == n3 || n1 == n3 {
		err = fmt.Errorf("triangle %d has a repeated vertex", id)
		return
	}
	tria = &Tria{ID: id, Nodes: [3]*Node{n1, n2, n3}}
	m.Trias = append(m.Trias, tria)
	// Register the three edges; an edge seen before gains a second triangle
	m.connectEdge(tria, n1, n2)
	m.connectEdge(tria, n2, n3)
	m.connectEdge(tria, n3, n1)
	return
}

func (m *Mesh) connectEdge(tria *Tria, n1, n2 *Node) (e *Edge) {
	var (
		ok  bool
		key = types.NewEdgeKey([2]int{n1.ID, n2.ID})
	)
	if e, ok = m.edgeMap[key]; !ok {
		e = &Edge{Key: key, Nodes: [2]*Node{n1, n2}}
		m.edgeMap[key] = e
		m.Edges = append(m.Edges, e)
	}
	// More than two incident triangles is malformed input. It is kept here
	// so the assembly's topology check can report it.
	e.Trias = append(e.Trias, tria)
	return
}

// GetNode looks a node up by its external ID.
func (m *Mesh) GetNode(id int) (n *Node, err error) {
	var ok bool
	if n, ok = m.nodeMap[id]; !ok {
		err = fmt.Errorf("no node with ID %d", id)
	}
	return
}

// GetEdge looks an edge up by its endpoint node IDs, in either order.
func (m *Mesh) GetEdge(nid1, nid2 int) (e *Edge, err error) {
	var ok bool
	if e, ok = m.edgeMap[types.NewEdgeKey([2]int{nid1, nid2})]; !ok {
		err = fmt.Errorf("no edge between nodes %d and %d", nid1, nid2)
	}
	return
}

// SetNodeProp attaches one property record to every node (per-node mode).
func (m *Mesh) SetNodeProp(p *laminate.Property) {
	for _, n := range m.Nodes {
		n.Prop = p
	}
}

// SetTriaProp attaches one property record to every triangle (per-tria mode).
func (m *Mesh) SetTriaProp(p *laminate.Property) {
	for _, tria := range m.Trias {
		tria.Prop = p
	}
}

/*
FromTriangles builds a mesh from an externally produced triangulation: a
point cloud and triples of zero-based point indices, e.g. the simplices of a
Delaunay triangulator. Node and triangle IDs are assigned 1..N in input
order, so edge and node iteration order is reproducible across calls.
*/
func FromTriangles(points [][3]float64, trias [][3]int) (m *Mesh, err error) {
	m = newMesh()
	for i, pt := range points {
		if _, err = m.addNode(i+1, utils.Vec3{pt[0], pt[1], pt[2]}); err != nil {
			return nil, err
		}
	}
	for i, tri := range trias {
		corners := [3]*Node{}
		for j, vi := range tri {
			if vi < 0 || vi >= len(points) {
				return nil, fmt.Errorf("triangle %d references point %d, have %d points",
					i, vi, len(points))
			}
			corners[j] = m.Nodes[vi]
		}
		if _, err = m.addTria(i+1, corners[0], corners[1], corners[2]); err != nil {
			return nil, err
		}
	}
	return
}
