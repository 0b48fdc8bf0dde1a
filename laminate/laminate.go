package laminate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/meshfree/espim/utils"
)

/*
Property holds the classical-lamination-theory constitutive tensors of one
material point: membrane (A), membrane-bending coupling (B) and bending (D),
each 3x3 symmetric. A Property is attached to mesh nodes or triangles and is
treated as read-only by the stiffness assembly.
*/
type Property struct {
	A, B, D *mat.SymDense
}

func NewProperty() (p *Property) {
	p = &Property{
		A: mat.NewSymDense(3, nil),
		B: mat.NewSymDense(3, nil),
		D: mat.NewSymDense(3, nil),
	}
	return
}

// Isotropic builds the single-layer plate property for a homogeneous
// isotropic material of Young's modulus E, Poisson ratio nu and thickness h.
func Isotropic(E, nu, h float64) (p *Property) {
	var (
		q11 = E / (1. - nu*nu)
		q12 = nu * q11
		q66 = E / (2. * (1. + nu))
	)
	p = NewProperty()
	p.A.SetSym(0, 0, q11*h)
	p.A.SetSym(0, 1, q12*h)
	p.A.SetSym(1, 1, q11*h)
	p.A.SetSym(2, 2, q66*h)
	d := utils.POW(h, 3) / 12.
	p.D.SetSym(0, 0, q11*d)
	p.D.SetSym(0, 1, q12*d)
	p.D.SetSym(1, 1, q11*d)
	p.D.SetSym(2, 2, q66*d)
	return
}

// Material is one orthotropic ply material in its principal directions.
type Material struct {
	E1   float64 `json:"e1"`
	E2   float64 `json:"e2"`
	Nu12 float64 `json:"nu12"`
	G12  float64 `json:"g12"`
}

// Ply is one layer of a laminate: which material, fiber angle in degrees,
// layer thickness.
type Ply struct {
	Material  string  `json:"material"`
	ThetaDeg  float64 `json:"theta"`
	Thickness float64 `json:"thickness"`
}

// Stack is a laminate layup, plies ordered bottom to top.
type Stack struct {
	Materials map[string]Material `json:"materials"`
	Plies     []Ply               `json:"plies"`
}

func (m Material) reduced() (q11, q12, q22, q66 float64) {
	var (
		nu21 = m.Nu12 * m.E2 / m.E1
		den  = 1. - m.Nu12*nu21
	)
	q11 = m.E1 / den
	q12 = m.Nu12 * m.E2 / den
	q22 = m.E2 / den
	q66 = m.G12
	return
}

// qbar rotates the reduced stiffnesses by theta (radians), returning the
// lamina stiffness in laminate axes.
func qbar(q11, q12, q22, q66, theta float64) (qb *mat.SymDense) {
	var (
		m  = math.Cos(theta)
		n  = math.Sin(theta)
		m2 = utils.POW(m, 2)
		n2 = utils.POW(n, 2)
		m4 = utils.POW(m, 4)
		n4 = utils.POW(n, 4)
	)
	qb = mat.NewSymDense(3, nil)
	qb.SetSym(0, 0, q11*m4+2.*(q12+2.*q66)*m2*n2+q22*n4)
	qb.SetSym(0, 1, (q11+q22-4.*q66)*m2*n2+q12*(m4+n4))
	qb.SetSym(1, 1, q11*n4+2.*(q12+2.*q66)*m2*n2+q22*m4)
	qb.SetSym(0, 2, (q11-q12-2.*q66)*m2*m*n+(q12-q22+2.*q66)*m*n2*n)
	qb.SetSym(1, 2, (q11-q12-2.*q66)*m*n2*n+(q12-q22+2.*q66)*m2*m*n)
	qb.SetSym(2, 2, (q11+q22-2.*q12-2.*q66)*m2*n2+q66*(m4+n4))
	return
}

// ABD integrates the ply stack through the thickness, midplane at z=0.
func (s *Stack) ABD() (p *Property, err error) {
	if len(s.Plies) == 0 {
		err = fmt.Errorf("laminate stack has no plies")
		return
	}
	var h float64
	for i, ply := range s.Plies {
		if ply.Thickness <= 0 {
			err = fmt.Errorf("ply %d has non-positive thickness %v", i, ply.Thickness)
			return
		}
		if _, ok := s.Materials[ply.Material]; !ok {
			err = fmt.Errorf("ply %d references unknown material %q", i, ply.Material)
			return
		}
		h += ply.Thickness
	}
	p = NewProperty()
	z0 := -h / 2.
	for _, ply := range s.Plies {
		var (
			z1    = z0 + ply.Thickness
			matl  = s.Materials[ply.Material]
			theta = ply.ThetaDeg * math.Pi / 180.
			dz    = z1 - z0
			dz2   = (utils.POW(z1, 2) - utils.POW(z0, 2)) / 2.
			dz3   = (utils.POW(z1, 3) - utils.POW(z0, 3)) / 3.
		)
		q11, q12, q22, q66 := matl.reduced()
		qb := qbar(q11, q12, q22, q66, theta)
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				p.A.SetSym(i, j, p.A.At(i, j)+qb.At(i, j)*dz)
				p.B.SetSym(i, j, p.B.At(i, j)+qb.At(i, j)*dz2)
				p.D.SetSym(i, j, p.D.At(i, j)+qb.At(i, j)*dz3)
			}
		}
		z0 = z1
	}
	return
}
