package espim

import (
	"math"

	"github.com/meshfree/espim/mesh"
	"github.com/meshfree/espim/utils"
)

/*
frame is the flat working plane of the smoothed-strain construction: an
orthonormal basis (e1, e2, up). Node positions are projected onto (e1, e2)
for normals and areas; up fixes the winding convention mesh-wide.
*/
type frame struct {
	up, e1, e2 utils.Vec3
}

func newFrame(up utils.Vec3) (f frame) {
	f.up = up.Unit()
	ref := utils.Vec3{1, 0, 0}
	if math.Abs(f.up.Dot(ref)) > 0.9 {
		ref = utils.Vec3{0, 1, 0}
	}
	f.e1 = ref.Sub(f.up.Scale(f.up.Dot(ref))).Unit()
	f.e2 = f.up.Cross(f.e1)
	return
}

func (f frame) project(p utils.Vec3) (x, y float64) {
	x, y = p.Dot(f.e1), p.Dot(f.e2)
	return
}

// ipoint is one integration point on the smoothing-domain boundary: the
// owning triangle, shape-function weights for (node1, node2, opposite node),
// in-plane unit normal and segment length.
type ipoint struct {
	tria   *mesh.Tria
	w      [3]float64
	nx, ny float64
	le     float64
}

/*
edgeDomain is the transient per-edge state of the assembly: the oriented
endpoint nodes, the opposite node and centroid of each adjacent triangle,
the integration points along the smoothing-domain boundary and the domain
areas. It lives in a side table owned by the assembler; the mesh itself is
not mutated.
*/
type edgeDomain struct {
	edge         *mesh.Edge
	n1, n2       *mesh.Node // oriented per the mesh-wide winding convention
	o1, o2       *mesh.Node // o2 is nil on a boundary edge
	tria1, tria2 *mesh.Tria // tria2 is nil on a boundary edge
	ipts         []ipoint   // 3 (boundary) or 4 (interior)
	sdomain      []utils.Vec3
	Ac1, Ac2, Ac float64 // per-triangle sub-areas and total control area
}

func (dom *edgeDomain) boundary() bool { return dom.tria2 == nil }

// segment appends the integration point of one smoothing-domain boundary
// segment a->b belonging to tria, with the fixed barycentric weights w.
func (dom *edgeDomain) segment(f frame, a, b utils.Vec3, tria *mesh.Tria, w [3]float64) {
	var (
		v  = b.Sub(a)
		n3 = v.Cross(f.up)
	)
	nx, ny := n3.Dot(f.e1), n3.Dot(f.e2)
	nrm := math.Hypot(nx, ny)
	dom.ipts = append(dom.ipts, ipoint{
		tria: tria,
		w:    w,
		nx:   nx / nrm,
		ny:   ny / nrm,
		le:   v.Norm(),
	})
}

// triArea is the unsigned shoelace area of the projected triangle (a, b, c).
func triArea(f frame, a, b, c utils.Vec3) float64 {
	ax, ay := f.project(a)
	bx, by := f.project(b)
	cx, cy := f.project(c)
	return math.Abs((bx-ax)*(cy-ay)-(cx-ax)*(by-ay)) / 2.
}

/*
buildDomain constructs the smoothing domain of one edge: orients the edge
endpoints against the winding convention, walks the boundary polygon
node1 -> mid1 -> node2 [-> mid2 -> node1], and produces the integration
points and control area. A boundary edge closes its polygon straight along
the edge and yields 3 integration points, an interior edge yields 4.
*/
func buildDomain(f frame, e *mesh.Edge) (dom *edgeDomain, err error) {
	if len(e.Trias) < 1 || len(e.Trias) > 2 {
		return nil, &InvalidTopologyError{
			Node1ID:  e.Nodes[0].ID,
			Node2ID:  e.Nodes[1].ID,
			NumTrias: len(e.Trias),
		}
	}
	dom = &edgeDomain{
		edge:  e,
		n1:    e.Nodes[0],
		n2:    e.Nodes[1],
		tria1: e.Trias[0],
	}
	dom.o1 = dom.tria1.OppositeNode(dom.n1, dom.n2)
	if dom.o1 == nil {
		return nil, &InvalidTopologyError{
			Node1ID:  e.Nodes[0].ID,
			Node2ID:  e.Nodes[1].ID,
			NumTrias: len(e.Trias),
		}
	}
	mid1 := dom.tria1.Centroid()
	var mid2 utils.Vec3
	if len(e.Trias) == 2 {
		dom.tria2 = e.Trias[1]
		dom.o2 = dom.tria2.OppositeNode(dom.n1, dom.n2)
		if dom.o2 == nil {
			return nil, &InvalidTopologyError{
				Node1ID:  e.Nodes[0].ID,
				Node2ID:  e.Nodes[1].ID,
				NumTrias: len(e.Trias),
			}
		}
		mid2 = dom.tria2.Centroid()
	}

	// Orientation fix: enforce a consistent winding of the domain polygon so
	// every segment normal of this edge points to the same side
	s := mid1.Sub(dom.n2.Pos).Cross(dom.n1.Pos.Sub(dom.n2.Pos)).Dot(f.up)
	if s < 0 {
		dom.n1, dom.n2 = dom.n2, dom.n1
	}

	dom.segment(f, dom.n1.Pos, mid1, dom.tria1, [3]float64{2. / 3., 1. / 6., 1. / 6.})
	dom.segment(f, mid1, dom.n2.Pos, dom.tria1, [3]float64{1. / 6., 2. / 3., 1. / 6.})
	dom.sdomain = append(dom.sdomain, dom.n1.Pos, mid1, dom.n2.Pos)
	dom.Ac1 = triArea(f, dom.n1.Pos, mid1, dom.n2.Pos)
	if dom.boundary() {
		// Closing segment straight along the edge
		dom.segment(f, dom.n2.Pos, dom.n1.Pos, dom.tria1, [3]float64{1. / 2., 1. / 2., 0})
	} else {
		dom.segment(f, dom.n2.Pos, mid2, dom.tria2, [3]float64{1. / 6., 2. / 3., 1. / 6.})
		dom.segment(f, mid2, dom.n1.Pos, dom.tria2, [3]float64{2. / 3., 1. / 6., 1. / 6.})
		dom.sdomain = append(dom.sdomain, mid2)
		dom.Ac2 = triArea(f, dom.n2.Pos, mid2, dom.n1.Pos)
	}
	dom.Ac = dom.Ac1 + dom.Ac2
	return
}
