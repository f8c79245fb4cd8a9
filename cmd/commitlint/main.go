package main

import (
	"fmt"
	"os"

	"github.com/breml/commitlint/internal/hooks/commitmsg"
)

func main() {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commitmsg.ExitCodeOf(err))
	}
}
