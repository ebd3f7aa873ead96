package main

import "github.com/cbout22/ghtree/internal/cli"

func main() {
	cli.Execute()
}
