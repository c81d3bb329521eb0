package main

import (
	"github.com/matchpoint-gg/matchpoint/internal/cli"
)

func main() {
	cli.Execute()
}
