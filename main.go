package main

import "github.com/flakeprobe/flakeprobe/commands"

func main() {
	commands.Execute()
}
