package main

import (
	"os"

	"github.com/AnonymousPurplePotato/geogen/pkg/cli"
)

// version is injected via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
