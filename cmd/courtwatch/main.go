package main

import "github.com/courtwatch/courtwatch/internal/cli"

func main() {
	cli.Execute()
}
