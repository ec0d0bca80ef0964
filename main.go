package main

import "github.com/notargets/ibtargets/cmd"

func main() {
	cmd.Execute()
}
