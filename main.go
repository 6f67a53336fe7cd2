package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/NandhaKishorM/electron-app-heart/pkg/cli"
)

var version = "dev"

func main() {
	// ECGASSIST_* variables may come from a .env file next to the binary
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args, version); err != nil {
		os.Exit(1)
	}
}
