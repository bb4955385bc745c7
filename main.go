package main

import "github.com/portdocs/portdocs/cmd"

func main() {
	cmd.Execute()
}
