package main

// Main entry point of the application
// Executes the Cobra command tree and maps any error to exit code 1

import (
	"fmt"
	"os"

	"langchart/cmd/commands"
	logging "langchart/internal/infra/log"
)

func main() {
	err := commands.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
