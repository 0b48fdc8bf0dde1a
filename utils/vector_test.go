package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	var (
		ex = Vec3{1, 0, 0}
		ey = Vec3{0, 1, 0}
		ez = Vec3{0, 0, 1}
	)
	assert.Equal(t, ez, ex.Cross(ey))
	assert.Equal(t, ex, ey.Cross(ez))
	assert.Equal(t, 0., ex.Dot(ey))
	assert.InDelta(t, 5., Vec3{3, 4, 0}.Norm(), 1.e-15)
	assert.InDelta(t, 1., Vec3{2, -3, 6}.Unit().Norm(), 1.e-15)
	assert.Panics(t, func() { Vec3{}.Unit() })
}

func TestPOW(t *testing.T) {
	assert.Equal(t, 1., POW(3., 0))
	assert.Equal(t, 8., POW(2., 3))
	assert.Equal(t, 16., POW(-2., 4))
	assert.InDelta(t, 0.25, POW(2., -2), 1.e-15)
	assert.InDelta(t, 32., POW(2., 5), 1.e-12)
}

func TestPartitionMap(t *testing.T) {
	// Partitions tile [0, MaxIndex) with max imbalance of one
	for _, np := range []int{1, 2, 3, 7} {
		pm := NewPartitionMap(np, 23)
		next := 0
		for n := 0; n < np; n++ {
			kMin, kMax := pm.GetBucketRange(n)
			assert.Equal(t, next, kMin)
			assert.True(t, kMax-kMin >= 23/np)
			assert.True(t, kMax-kMin <= 23/np+1)
			next = kMax
		}
		assert.Equal(t, 23, next)
	}
}
