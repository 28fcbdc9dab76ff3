// main is the entry point for the tachoscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/roadworks/tachoscan/cmd"
	"github.com/roadworks/tachoscan/internal/reportstore"
)

func main() {
	err := cmd.Execute()
	reportstore.CloseStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
