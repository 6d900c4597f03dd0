package main

import "github.com/ogulcanaydogan/tomatina/internal/cli"

func main() {
	cli.Execute()
}
