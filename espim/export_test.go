package espim

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshfree/espim/laminate"
)

func TestWriteMatrixMarket(t *testing.T) {
	m := squarePatch(t)
	m.SetNodeProp(laminate.Isotropic(71.e9, 0.33, 0.002))
	K, err := NewAssembler().Assemble(m, true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMatrixMarket(&buf, K))
	out := buf.String()
	assert.False(t, strings.Contains(out, "NaN"))

	scanner := bufio.NewScanner(strings.NewReader(out))
	require.True(t, scanner.Scan())
	assert.Equal(t, "%%MatrixMarket matrix coordinate real general", scanner.Text())
	require.True(t, scanner.Scan())
	var nr, nc, nnz int
	_, err = fmt.Sscanf(scanner.Text(), "%d %d %d", &nr, &nc, &nnz)
	require.NoError(t, err)
	assert.Equal(t, 20, nr)
	assert.Equal(t, 20, nc)
	assert.Equal(t, K.NNZ(), nnz)

	// Every entry line parses back, 1-based and in range
	count := 0
	for scanner.Scan() {
		var (
			i, j int
			v    float64
		)
		_, err = fmt.Sscanf(scanner.Text(), "%d %d %g", &i, &j, &v)
		require.NoError(t, err, "line %q", scanner.Text())
		assert.True(t, i >= 1 && i <= nr)
		assert.True(t, j >= 1 && j <= nc)
		assert.InDelta(t, K.At(i-1, j-1), v, 0)
		count++
	}
	assert.Equal(t, nnz, count)
}
