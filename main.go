package main

import "github.com/inspectra/inspection-management/cmd"

func main() {
	cmd.Execute()
}
