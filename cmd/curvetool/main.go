package main

import "github.com/forestrie/go-keycurves/cmd/curvetool/cmd"

func main() {
	cmd.Execute()
}
