// Command server runs the Casa Quetzal gate server and its maintenance
// commands.
package main

import (
	"os"

	"quetzal-gate/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
