package main

import "dungeoncrawl/internal/cli"

func main() {
	cli.Execute()
}
