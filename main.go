package main

import (
	"fmt"
	"os"

	"blogadmin/cli"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		cli.HandleCommand(nil)
		return
	}

	switch os.Args[1] {
	case "version", "--version", "-v":
		fmt.Printf("blogadmin v%s\n", cliVersion)
	default:
		cli.HandleCommand(os.Args[1:])
	}
}
