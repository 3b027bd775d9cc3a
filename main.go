package main

import "github.com/notargets/vnlattice/cmd"

func main() {
	cmd.Execute()
}
