package main

import (
	"github.com/meshfree/espim/cmd"
)

func main() {
	cmd.Execute()
}
