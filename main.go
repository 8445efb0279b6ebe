package main

import "github.com/meshkv/meshkv/cmd"

func main() {
	cmd.Execute()
}
