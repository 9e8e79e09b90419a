package main

import "github.com/hpcprof/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
