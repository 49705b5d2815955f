package main

import "github.com/wkalt/bitptr/cli/cmd"

func main() {
	cmd.Execute()
}
