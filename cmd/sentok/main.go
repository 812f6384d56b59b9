package main

import "sentiment/internal/cli"

func main() {
	cli.Execute()
}
