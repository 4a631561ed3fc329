package main

import (
	"os"

	"github.com/gophersatwork/sigcache/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
