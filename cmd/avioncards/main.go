// Command avioncards manages a local catalog of aircraft flashcards.
package main

import "github.com/mesh-intelligence/avioncards/internal/cli"

func main() {
	cli.Execute()
}
