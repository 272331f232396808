package main

import (
	"github.com/shadowgame/impostor-server/internal/cli"
)

func main() {
	cli.Execute()
}
