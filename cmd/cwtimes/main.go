package main

import (
	"github.com/mpautz/crossword-times/internal/cli"
)

func main() {
	cli.Execute()
}
