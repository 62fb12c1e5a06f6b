package main

import (
	"github.com/mchmarny/scorekit/pkg/cli"
)

func main() {
	cli.Execute()
}
