package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/harun/plotpipe/internal/cli"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is normal; PLOTPIPE_* variables may come from the shell
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env file: %v\n", err)
		os.Exit(1)
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
