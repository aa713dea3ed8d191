package main

import "github.com/chaintrace/chaintrace/cmd"

func main() {
	cmd.Execute()
}
