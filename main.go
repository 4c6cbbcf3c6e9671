package main

import "github.com/notargets/kmesh/cmd"

func main() {
	cmd.Execute()
}
