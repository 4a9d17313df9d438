package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ob1-scout/ob1-scout/cmd"
)

func main() {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
