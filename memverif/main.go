// Command memverif runs verification scripts against the simulated memory.
package main

import "github.com/sarchlab/memverif/memverif/cmd"

func main() {
	cmd.Execute()
}
