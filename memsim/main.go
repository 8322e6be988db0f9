// Command memsim replays a logical address trace through a demand-paged
// memory and reports translation statistics.
package main

import "github.com/sarchlab/memsim/memsim/cmd"

func main() {
	cmd.Execute()
}
