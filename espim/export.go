package espim

import (
	"bufio"
	"fmt"
	"io"

	"github.com/meshfree/espim/utils"
)

// WriteMatrixMarket writes the assembled matrix in MatrixMarket coordinate
// format (1-based indices), the lingua franca of external sparse solvers.
func WriteMatrixMarket(w io.Writer, K utils.CSR) (err error) {
	var (
		bw     = bufio.NewWriter(w)
		nr, nc = K.Dims()
	)
	if _, err = fmt.Fprintf(bw, "%%%%MatrixMarket matrix coordinate real general\n"); err != nil {
		return
	}
	if _, err = fmt.Fprintf(bw, "%d %d %d\n", nr, nc, K.NNZ()); err != nil {
		return
	}
	K.DoNonZero(func(i, j int, v float64) {
		fmt.Fprintf(bw, "%d %d %.17g\n", i+1, j+1, v)
	})
	err = bw.Flush()
	return
}
