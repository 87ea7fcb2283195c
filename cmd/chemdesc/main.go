// Command chemdesc is the command-line interface to the descriptor engine:
// profile, acceptor counting, WHIM and similarity over molecule JSON files.
package main

import "github.com/turtacn/ChemDesc-Engine/internal/interfaces/cli"

func main() {
	cli.Execute()
}
