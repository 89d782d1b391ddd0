package main

import (
	"os"

	"github.com/coinbase/cb-schnorr-go/cmd/schnorrkey/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
