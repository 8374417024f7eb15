package main

import (
	"github.com/NVIDIA/slurmtool/pkg/cli"
)

func main() {
	cli.Execute()
}
