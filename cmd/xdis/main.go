// Command xdis is a thin example front end over this module's decoder,
// formatter, segment, and xutil packages: decode a hex byte string into
// Intel-syntax text, dump the structural byte-range breakdown of an
// instruction, or print the module's version and feature bits.
package main

import "github.com/relsig/x86isa/cmd/xdis/cmd"

func main() {
	cmd.Execute()
}
