// Package main provides the insurapro CLI.
package main

import "github.com/mesh-intelligence/insurapro/internal/cli"

func main() {
	cli.Execute()
}
