package main

import (
	"fmt"
	"os"

	"github.com/rezonia/invoice-exporter/cmd/invoice-exporter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
