package main

import "github.com/kode4food/tandem/cmd/tandem/cmd"

func main() {
	cmd.Execute()
}
