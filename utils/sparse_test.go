package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriplets(t *testing.T) {
	// Duplicate coordinates sum during CSR conversion
	{
		tr := NewTriplets(4)
		tr.Append(0, 0, 1.)
		tr.Append(0, 0, 2.)
		tr.Append(1, 2, -1.)
		tr.Append(2, 1, 0.5)
		K := tr.ToCSR(3, 3)
		assert.Equal(t, 3., K.At(0, 0))
		assert.Equal(t, -1., K.At(1, 2))
		assert.Equal(t, 0.5, K.At(2, 1))
		assert.Equal(t, 0., K.At(1, 1))
	}
	// Fixed storage with indexed slots matches appended storage
	{
		tr := NewTripletsFixed(3)
		tr.Put(2, 1, 1, 4.)
		tr.Put(0, 0, 1, 1.)
		tr.Put(1, 0, 1, 1.)
		assert.Equal(t, 3, tr.Len())
		K := tr.ToCSR(2, 2)
		assert.Equal(t, 2., K.At(0, 1))
		assert.Equal(t, 4., K.At(1, 1))
	}
}

