package main

import "github.com/thetombrider/italian-tech-ecosystem-knowledge-graph/cmd"

func main() {
	cmd.Execute()
}
