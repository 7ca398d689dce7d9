package main

import (
	"os"

	"github.com/sunwei/blogsite/commands"
)

func main() {
	os.Exit(commands.Execute(os.Args[1:]))
}
