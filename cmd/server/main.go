package main

import "njgeo/internal/cli"

// main hands off to the cobra command tree; serve and query share one wiring path.
func main() {
	cli.Execute()
}
