// Package main is the single-binary entrypoint for Mission HQ.
package main

import "github.com/missionhq/missionhq/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
