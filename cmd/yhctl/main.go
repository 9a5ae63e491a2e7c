package main

import (
	"os"

	"github.com/yhdfc-next/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
