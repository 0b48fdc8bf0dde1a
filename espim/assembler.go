package espim

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/meshfree/espim/mesh"
	"github.com/meshfree/espim/utils"
)

/*
Assembler builds the global membrane+bending stiffness matrix of a
triangulated shell surface by the edge-based smoothed Galerkin construction:
one smoothing domain per mesh edge, 3 or 4 boundary integration points per
domain, and a 4-node x 5-dof bilinear contribution scattered into a sparse
matrix of dimension 5*node_count.

Up is the projection axis of the flat working plane and fixes the winding
convention; NP is the number of workers for the per-edge stiffness stage;
Order assigns the dense node numbering.
*/
type Assembler struct {
	Up    utils.Vec3
	NP    int
	Order OrderingFunc
}

type Option func(*Assembler)

func WithUp(up utils.Vec3) Option {
	return func(asm *Assembler) { asm.Up = up }
}

func WithParallelDegree(np int) Option {
	return func(asm *Assembler) { asm.NP = np }
}

func WithOrdering(f OrderingFunc) Option {
	return func(asm *Assembler) { asm.Order = f }
}

func NewAssembler(opts ...Option) (asm *Assembler) {
	asm = &Assembler{
		Up:    utils.Vec3{0, 0, 1},
		NP:    runtime.NumCPU(),
		Order: DistanceOrdering,
	}
	for _, opt := range opts {
		opt(asm)
	}
	return
}

/*
Assemble computes the global stiffness matrix. propFromNode selects whether
constitutive property records are read from nodes or from triangles. The
returned matrix is in compressed sparse row form; rows and columns are
5*node.Index + dof with dof offsets {0,1,3,4} populated and offset 2
(drilling rotation) structurally zero.

The mesh is only written through node Index slots; all other per-edge state
is staged in assembler-owned side tables, so a second call on the same mesh
reproduces the first bit for bit.
*/
func (asm *Assembler) Assemble(m *mesh.Mesh, propFromNode bool) (K utils.CSR, err error) {
	if err = checkProperties(m, propFromNode); err != nil {
		return
	}
	asm.Order(m.Nodes)

	// Geometry pass: smoothing domains, integration points, control areas.
	// Topology errors surface here, before any stiffness term is computed.
	f := newFrame(asm.Up)
	domains := make([]*edgeDomain, len(m.Edges))
	for i, e := range m.Edges {
		if domains[i], err = buildDomain(f, e); err != nil {
			return
		}
	}
	log.Infof("assembling stiffness: %d nodes, %d edges", len(m.Nodes), len(m.Edges))

	// Stiffness pass: embarrassingly parallel over edges. Each edge owns a
	// fixed 256-slot block of the triplet arrays, so workers never share
	// state and the result is independent of the parallel degree.
	np := asm.NP
	if np < 1 {
		np = 1
	}
	if np > len(domains) {
		np = len(domains)
	}
	trip := utils.NewTripletsFixed(tripletsPerEdge * len(domains))
	if len(domains) > 0 {
		pm := utils.NewPartitionMap(np, len(domains))
		var g errgroup.Group
		for n := 0; n < np; n++ {
			kMin, kMax := pm.GetBucketRange(n)
			g.Go(func() error {
				for k := kMin; k < kMax; k++ {
					var (
						dom  = domains[k]
						p    = blendProperty(dom, propFromNode)
						base = tripletsPerEdge * k
					)
					edgeStiffness(dom, p, func(slot, row, col int, val float64) {
						trip.Put(base+slot, row, col, val)
					})
				}
				return nil
			})
		}
		if err = g.Wait(); err != nil {
			return
		}
	}

	n5 := DofPerNode * len(m.Nodes)
	K = trip.ToCSR(n5, n5)
	log.Infof("assembly finished: %dx%d, %d stored entries", n5, n5, K.NNZ())
	return
}

// checkProperties verifies, before any geometry work, that every node or
// triangle referenced by an edge carries a property record.
func checkProperties(m *mesh.Mesh, propFromNode bool) error {
	for _, e := range m.Edges {
		for _, tria := range e.Trias {
			if !propFromNode {
				if tria.Prop == nil {
					return &MissingPropertyError{TriaID: tria.ID}
				}
				continue
			}
			for _, n := range tria.Nodes {
				if n.Prop == nil {
					return &MissingPropertyError{NodeID: n.ID}
				}
			}
		}
	}
	return nil
}
