package main

import "github.com/bldgen/bldgen/cmd"

func main() {
	cmd.Execute()
}
