package espim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshfree/espim/laminate"
	"github.com/meshfree/espim/utils"
)

/*
Closed-form reference for the diagonal edge of the unit-square patch, derived
by hand from the segment walk: after orientation the edge runs (1,1) -> (0,0)
with opposite nodes (1,0) and (0,1), all four segments have le*n = the
segment vector rotated by -90 degrees, Ac = 1/3, and the smoothed operators
come out as +-1/2:

	node slot:   n1    n2    o1    o2
	fx:         -1/2  +1/2  -1/2  +1/2
	fy:         -1/2  +1/2  +1/2  -1/2
*/
func diagonalDomain(t *testing.T) *edgeDomain {
	m := squarePatch(t)
	DistanceOrdering(m.Nodes)
	e, err := m.GetEdge(1, 3)
	require.NoError(t, err)
	dom, err := buildDomain(newFrame(utils.Vec3{0, 0, 1}), e)
	require.NoError(t, err)
	return dom
}

func TestStrainOperators(t *testing.T) {
	dom := diagonalDomain(t)
	fx, fy := strainOperators(dom)
	assert.InDelta(t, -0.5, fx[0], 1.e-14)
	assert.InDelta(t, -0.5, fy[0], 1.e-14)
	assert.InDelta(t, 0.5, fx[1], 1.e-14)
	assert.InDelta(t, 0.5, fy[1], 1.e-14)
	assert.InDelta(t, -0.5, fx[2], 1.e-14)
	assert.InDelta(t, 0.5, fy[2], 1.e-14)
	assert.InDelta(t, 0.5, fx[3], 1.e-14)
	assert.InDelta(t, -0.5, fy[3], 1.e-14)
	// A constant displacement field carries no smoothed strain
	assert.InDelta(t, 0., fx[0]+fx[1]+fx[2]+fx[3], 1.e-14)
	assert.InDelta(t, 0., fy[0]+fy[1]+fy[2]+fy[3], 1.e-14)
}

func TestStrainOperatorsBoundary(t *testing.T) {
	m := squarePatch(t)
	e, err := m.GetEdge(1, 2)
	require.NoError(t, err)
	dom, err := buildDomain(newFrame(utils.Vec3{0, 0, 1}), e)
	require.NoError(t, err)
	fx, fy := strainOperators(dom)
	// The dummy 4th slot of a boundary edge stays exactly zero
	assert.Equal(t, 0., fx[3])
	assert.Equal(t, 0., fy[3])
	// Constant-field consistency holds with three real nodes
	assert.InDelta(t, 0., fx[0]+fx[1]+fx[2], 1.e-14)
	assert.InDelta(t, 0., fy[0]+fy[1]+fy[2], 1.e-14)
}

type tripleMap map[[2]int]float64

func collectEdge(dom *edgeDomain, p *laminate.Property) (entries tripleMap, slots int) {
	entries = make(tripleMap)
	edgeStiffness(dom, p, func(slot, row, col int, val float64) {
		entries[[2]int{row, col}] += val
		slots++
	})
	return
}

func TestEdgeStiffnessClosedForm(t *testing.T) {
	var (
		dom    = diagonalDomain(t)
		prop   = laminate.Isotropic(71.e9, 0.33, 0.002)
		A      = prop.A
		D      = prop.D
		tolA   = A.At(0, 0) * 1.e-14
		tolD   = D.At(0, 0) * 1.e-14
		i1, i2 = dom.n1.Index, dom.n2.Index
	)
	// Per-node blending of a uniform property is the property itself
	blended := blendProperty(dom, true)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, A.At(i, j), blended.A.At(i, j), tolA)
		}
	}

	entries, slots := collectEdge(dom, blended)
	assert.Equal(t, tripletsPerEdge, slots)

	// k(u1,u1) = Ac*(A11*fx^2 + 2*A16*fx*fy + A66*fy^2), fx = fy = -1/2,
	// Ac = 1/3 -> (A11 + A66)/12 for an isotropic sheet (A16 = 0)
	assert.InDelta(t, (A.At(0, 0)+A.At(2, 2))/12., entries[[2]int{5 * i1, 5 * i1}], tolA)
	// k(u1,v1) = (A12 + A66)/12
	assert.InDelta(t, (A.At(0, 1)+A.At(2, 2))/12., entries[[2]int{5 * i1, 5*i1 + 1}], tolA)
	// k(u1,u2): operators of n2 have opposite sign -> -(A11 + A66)/12
	assert.InDelta(t, -(A.At(0, 0)+A.At(2, 2))/12., entries[[2]int{5 * i1, 5 * i2}], tolA)
	// Bending mirrors membrane with D
	assert.InDelta(t, (D.At(0, 0)+D.At(2, 2))/12., entries[[2]int{5*i1 + 3, 5*i1 + 3}], tolD)
	assert.InDelta(t, (D.At(0, 1)+D.At(2, 2))/12., entries[[2]int{5*i1 + 3, 5*i1 + 4}], tolD)
	// No membrane-bending coupling for an isotropic single layer
	assert.InDelta(t, 0., entries[[2]int{5 * i1, 5*i1 + 3}], tolA)

	// Drilling dof rows and columns are never written
	for rc := range entries {
		assert.NotEqual(t, 2, rc[0]%5)
		assert.NotEqual(t, 2, rc[1]%5)
	}
}

func TestBlendPropertyPerTria(t *testing.T) {
	m := squarePatch(t)
	var (
		p1 = laminate.Isotropic(71.e9, 0.33, 0.002)
		p2 = laminate.Isotropic(71.e9, 0.33, 0.004) // double thickness
	)
	m.Trias[0].Prop = p1
	m.Trias[1].Prop = p2
	f := newFrame(utils.Vec3{0, 0, 1})

	// Boundary edge: the single triangle's record, unblended
	{
		e, err := m.GetEdge(1, 2)
		require.NoError(t, err)
		dom, err := buildDomain(f, e)
		require.NoError(t, err)
		assert.Same(t, p1, blendProperty(dom, false))
	}
	// Interior edge: area-weighted average; equal sub-areas here, so the
	// blend is the arithmetic mean
	{
		e, err := m.GetEdge(1, 3)
		require.NoError(t, err)
		dom, err := buildDomain(f, e)
		require.NoError(t, err)
		p := blendProperty(dom, false)
		assert.InDelta(t, (p1.A.At(0, 0)+p2.A.At(0, 0))/2., p.A.At(0, 0), 1.)
		assert.InDelta(t, (p1.D.At(2, 2)+p2.D.At(2, 2))/2., p.D.At(2, 2), 1.e-9)
	}
}

func TestBlendPropertyPerNodeBoundary(t *testing.T) {
	m := squarePatch(t)
	// Distinct property per node to expose the 4/9, 4/9, 1/9 weights
	props := make([]*laminate.Property, 4)
	for i := range props {
		props[i] = laminate.Isotropic(float64(i+1)*1.e9, 0.3, 0.001)
		m.Nodes[i].Prop = props[i]
	}
	e, err := m.GetEdge(1, 2)
	require.NoError(t, err)
	dom, err := buildDomain(newFrame(utils.Vec3{0, 0, 1}), e)
	require.NoError(t, err)
	p := blendProperty(dom, true)
	want := 4./9.*props[dom.n1.ID-1].A.At(0, 0) +
		4./9.*props[dom.n2.ID-1].A.At(0, 0) +
		1./9.*props[dom.o1.ID-1].A.At(0, 0)
	assert.InDelta(t, want, p.A.At(0, 0), 1.e-3)
}
