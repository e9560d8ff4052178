package main

import (
	"os"

	"github.com/rushsh/rush/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
