package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/meshfree/espim/utils"
)

/*
ReadNastran reads a triangular shell mesh from a Nastran bulk-data deck,
keeping only the GRID and CTRIA3 cards. Free-field (comma separated) and
small-field (8-column) formats are supported; any other card is skipped.
*/
func ReadNastran(filepath string) (m *Mesh, err error) {
	var file *os.File
	if file, err = os.Open(filepath); err != nil {
		return
	}
	defer file.Close()

	type triaCard struct {
		eid        int
		n1, n2, n3 int
	}
	var trias []triaCard

	m = newMesh()
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(strings.TrimSpace(line)) == 0 || strings.HasPrefix(line, "$") {
			continue
		}
		fields := splitCard(line)
		switch strings.ToUpper(strings.TrimSpace(fields[0])) {
		case "GRID":
			var (
				nid     int
				x, y, z float64
			)
			if nid, err = cardInt(fields, 1); err == nil {
				x, err = cardFloat(fields, 3)
			}
			if err == nil {
				y, err = cardFloat(fields, 4)
			}
			if err == nil {
				z, err = cardFloat(fields, 5)
			}
			if err != nil {
				return nil, fmt.Errorf("%s line %d: bad GRID card: %w", filepath, lineNo, err)
			}
			if _, err = m.addNode(nid, utils.Vec3{x, y, z}); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", filepath, lineNo, err)
			}
		case "CTRIA3":
			var tc triaCard
			if tc.eid, err = cardInt(fields, 1); err == nil {
				tc.n1, err = cardInt(fields, 3)
			}
			if err == nil {
				tc.n2, err = cardInt(fields, 4)
			}
			if err == nil {
				tc.n3, err = cardInt(fields, 5)
			}
			if err != nil {
				return nil, fmt.Errorf("%s line %d: bad CTRIA3 card: %w", filepath, lineNo, err)
			}
			// Nodes may appear after the elements that reference them, so
			// triangles are resolved after the full deck is read
			trias = append(trias, tc)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	for _, tc := range trias {
		var corners [3]*Node
		for j, nid := range [3]int{tc.n1, tc.n2, tc.n3} {
			if corners[j], err = m.GetNode(nid); err != nil {
				return nil, fmt.Errorf("%s: CTRIA3 %d: %w", filepath, tc.eid, err)
			}
		}
		if _, err = m.addTria(tc.eid, corners[0], corners[1], corners[2]); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath, err)
		}
	}
	return
}

// splitCard splits a bulk-data line into fields: comma separated when a
// comma is present, fixed 8-column otherwise.
func splitCard(line string) (fields []string) {
	if strings.Contains(line, ",") {
		fields = strings.Split(line, ",")
		return
	}
	for len(line) > 0 {
		w := 8
		if len(line) < w {
			w = len(line)
		}
		fields = append(fields, line[:w])
		line = line[w:]
	}
	return
}

func cardInt(fields []string, i int) (val int, err error) {
	if i >= len(fields) {
		err = fmt.Errorf("missing field %d", i)
		return
	}
	val, err = strconv.Atoi(strings.TrimSpace(fields[i]))
	return
}

func cardFloat(fields []string, i int) (val float64, err error) {
	if i >= len(fields) {
		err = fmt.Errorf("missing field %d", i)
		return
	}
	s := strings.TrimSpace(fields[i])
	if s == "" {
		return 0, nil
	}
	if val, err = strconv.ParseFloat(s, 64); err == nil {
		return
	}
	// Nastran shorthand exponent: 1.2-3 means 1.2e-3
	for k := len(s) - 1; k > 0; k-- {
		if (s[k] == '+' || s[k] == '-') && s[k-1] != 'e' && s[k-1] != 'E' {
			if v, e2 := strconv.ParseFloat(s[:k]+"e"+s[k:], 64); e2 == nil {
				return v, nil
			}
			break
		}
	}
	return
}
