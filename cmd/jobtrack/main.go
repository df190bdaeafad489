package main

import (
	"context"
	"os"

	"github.com/dan-yates1/job-tracker/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
