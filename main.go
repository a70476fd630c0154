package main

import (
	"fmt"
	"os"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
