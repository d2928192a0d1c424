package main

import "github.com/gaurav-prasanna/treemark/cmd"

func main() {
	cmd.Execute()
}
