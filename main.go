package main

import "github.com/lepinkainen/backlog/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
