package main

import (
	"github.com/projectdiscovery/gologger"

	"github.com/jclyne/pattern-scanner/internal/runner"
)

func main() {
	opts := runner.ParseFlags()
	if err := runner.Run(opts); err != nil {
		gologger.Fatal().Msgf("scan failed: %v", err)
	}
}
