package main

import (
	"os"

	"github.com/bnema/emetic/cmd"
)

func main() {
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
