package main

import (
	"github.com/bornholm/cseprobe/internal/command"
	"github.com/bornholm/cseprobe/internal/command/probe"
)

var version string = "dev"

func main() {
	command.Main("cseprobe", version, "Run a Google Custom Search probe and print the matched results", probe.Action())
}
