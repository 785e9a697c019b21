package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/splitbooks-dev/splitbooks/internal/commands"
)

func main() {
	// A .env in the working directory may set SPLITBOOKS_DIR; missing is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
