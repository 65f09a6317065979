package main

import "github.com/obsidianstack/schedhealth/internal/cli"

func main() {
	cli.Execute()
}
