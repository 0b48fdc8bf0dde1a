package espim

import (
	"gonum.org/v1/gonum/mat"

	"github.com/meshfree/espim/laminate"
	"github.com/meshfree/espim/mesh"
)

// Five degrees of freedom per node; relative offset 2 (drilling rotation)
// carries no stiffness and is never assembled.
const (
	DofPerNode = 5
	// Every edge emits exactly this many triplets: 4 nodes x 4 active dofs,
	// squared.
	tripletsPerEdge = 256
)

// activeDofs are the in-plane displacements and the two bending rotations.
// Offsets 0 and 3 pair with the x strain operator, 1 and 4 with y.
var activeDofs = [4]int{0, 1, 3, 4}

func addScaled(dst, src *mat.SymDense, w float64) {
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			dst.SetSym(i, j, dst.At(i, j)+w*src.At(i, j))
		}
	}
}

/*
blendProperty resolves the constitutive tensors governing one edge's control
domain. Per-node properties are blended with fixed weights reflecting each
vertex's share of the domain; per-triangle properties are taken directly
(boundary edge) or area-averaged over the two sub-domains (interior edge).
The returned Property is either freshly allocated or an alias of an input
record; it is never written to.
*/
func blendProperty(dom *edgeDomain, propFromNode bool) (p *laminate.Property) {
	if !propFromNode {
		if dom.boundary() {
			return dom.tria1.Prop
		}
		p = laminate.NewProperty()
		w1, w2 := dom.Ac1/dom.Ac, dom.Ac2/dom.Ac
		addScaled(p.A, dom.tria1.Prop.A, w1)
		addScaled(p.A, dom.tria2.Prop.A, w2)
		addScaled(p.B, dom.tria1.Prop.B, w1)
		addScaled(p.B, dom.tria2.Prop.B, w2)
		addScaled(p.D, dom.tria1.Prop.D, w1)
		addScaled(p.D, dom.tria2.Prop.D, w2)
		return
	}
	p = laminate.NewProperty()
	type contrib struct {
		n *mesh.Node
		w float64
	}
	var contribs []contrib
	if dom.boundary() {
		contribs = []contrib{
			{dom.n1, 4. / 9.}, {dom.n2, 4. / 9.}, {dom.o1, 1. / 9.},
		}
	} else {
		contribs = []contrib{
			{dom.n1, 5. / 12.}, {dom.n2, 5. / 12.},
			{dom.o1, 1. / 12.}, {dom.o2, 1. / 12.},
		}
	}
	for _, c := range contribs {
		addScaled(p.A, c.n.Prop.A, c.w)
		addScaled(p.B, c.n.Prop.B, c.w)
		addScaled(p.D, c.n.Prop.D, c.w)
	}
	return
}

/*
strainOperators evaluates the smoothed strain operators of the edge: for each
of the four node slots (node1, node2, opposite1, opposite2) the boundary
integral sum(w * le * n)/Ac of the linear shape functions over the domain's
integration points. On a boundary edge slot 3 is the dummy node: no
integration point references it, so its operators stay exactly zero.
*/
func strainOperators(dom *edgeDomain) (fx, fy [4]float64) {
	for _, ip := range dom.ipts {
		oslot := 2
		if ip.tria == dom.tria2 {
			oslot = 3
		}
		slots := [3]int{0, 1, oslot}
		for c := 0; c < 3; c++ {
			fx[slots[c]] += ip.w[c] * ip.le * ip.nx
			fy[slots[c]] += ip.w[c] * ip.le * ip.ny
		}
	}
	for k := 0; k < 4; k++ {
		fx[k] /= dom.Ac
		fy[k] /= dom.Ac
	}
	return
}

// tensorFor selects the constitutive block of a dof pair: membrane-membrane
// uses A, bending-bending D, the mixed pairs the coupling tensor B.
func tensorFor(p *laminate.Property, da, db int) *mat.SymDense {
	switch {
	case da < 2 && db < 2:
		return p.A
	case da >= 3 && db >= 3:
		return p.D
	default:
		return p.B
	}
}

// strainVector maps a dof offset and the node's smoothed operators onto the
// 3-component strain basis (normal-x, normal-y, shear): x-parity dofs
// produce (fx, 0, fy), y-parity dofs (0, fy, fx).
func strainVector(dof int, fx, fy float64) [3]float64 {
	if dof == 0 || dof == 3 {
		return [3]float64{fx, 0, fy}
	}
	return [3]float64{0, fy, fx}
}

/*
edgeStiffness evaluates the local stiffness of one edge and scatters exactly
tripletsPerEdge entries through put(slot, row, col, value). Each entry is the
smoothed bilinear form

	Ac * ga^T * T * gb

over a fixed enumeration of 4x4 node pairs and 4x4 active dof pairs, with a
fixed inner summation order so repeated assemblies are bit-identical. The
dummy 4th node of a boundary edge has zero strain operators, contributing
explicit zeros at row/col index 0.
*/
func edgeStiffness(dom *edgeDomain, p *laminate.Property, put func(slot, row, col int, val float64)) {
	var (
		fx, fy = strainOperators(dom)
		nodes  = [4]*mesh.Node{dom.n1, dom.n2, dom.o1, dom.o2}
		idx    [4]int
	)
	for k, n := range nodes {
		if n != nil {
			idx[k] = n.Index
		}
		// A nil slot is the boundary-edge dummy: index 0, weights zero
	}
	slot := 0
	for a := 0; a < 4; a++ {
		for _, da := range activeDofs {
			ga := strainVector(da, fx[a], fy[a])
			for b := 0; b < 4; b++ {
				for _, db := range activeDofs {
					var (
						T   = tensorFor(p, da, db)
						gb  = strainVector(db, fx[b], fy[b])
						sum float64
					)
					for r := 0; r < 3; r++ {
						for c := 0; c < 3; c++ {
							sum += ga[r] * T.At(r, c) * gb[c]
						}
					}
					put(slot, DofPerNode*idx[a]+da, DofPerNode*idx[b]+db, dom.Ac*sum)
					slot++
				}
			}
		}
	}
	if slot != tripletsPerEdge {
		panic("edge stiffness emitted wrong triplet count")
	}
}
