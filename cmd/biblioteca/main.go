// Command biblioteca runs and administers the library server.
package main

import (
	"os"

	"github.com/mmynk/biblioteca/cmd/biblioteca/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
