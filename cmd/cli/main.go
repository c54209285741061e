package main

import (
	"github.com/ledgerpilot/go-gl-recon/cmd/cli/cmd"
)

func main() {
	cmd.Execute()
}
