package main

import "github.com/sce-foundation/sce-portal/cmd"

func main() {
	cmd.Execute()
}
