package main

import "github.com/gaurav-prasanna/lexipipe/cmd"

func main() {
	cmd.Execute()
}
