package main

import (
	"github.com/inboxgate/inboxgate/cmd"
)

// version is overridden at build time by goreleaser.
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
