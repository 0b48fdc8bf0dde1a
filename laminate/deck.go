package laminate

import (
	"fmt"
	"io/ioutil"

	"github.com/ghodss/yaml"
)

// ReadStack parses a laminate deck in YAML form, e.g.:
//
//	materials:
//	  cfrp: {e1: 142.5e9, e2: 8.7e9, nu12: 0.28, g12: 5.1e9}
//	plies:
//	  - {material: cfrp, theta: 0, thickness: 0.125e-3}
//	  - {material: cfrp, theta: 90, thickness: 0.125e-3}
func ReadStack(data []byte) (s *Stack, err error) {
	s = &Stack{}
	if err = yaml.Unmarshal(data, s); err != nil {
		err = fmt.Errorf("unable to parse laminate deck: %w", err)
		return
	}
	return
}

func ReadStackFile(filepath string) (s *Stack, err error) {
	var data []byte
	if data, err = ioutil.ReadFile(filepath); err != nil {
		return
	}
	return ReadStack(data)
}
