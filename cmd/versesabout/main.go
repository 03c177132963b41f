package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"versesabout/internal/cmd"
)

func main() {
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
