// The main package for the dealflow executable.
package main

import (
	"github.com/venturescout/dealflow/cmd"
)

func main() {
	cmd.Execute()
}
