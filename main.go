package main

import "github.com/luthersystems/jisp/cmd"

func main() {
	cmd.Execute()
}
