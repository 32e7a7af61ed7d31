package main

import "github.com/solipsis/go-ethwallet/cmd"

func main() {
	cmd.Execute()
}
