package runner

import (
	"os"

	"github.com/projectdiscovery/gologger"
)

var banner = (`
               __
   ___  ___ _/ /____ _______ ____
  / _ \/ _ '/ __(_-</ __/ _ '/ _ \
 / .__/\_,_/\__/___/\__/\_,_/_//_/
/_/
`)

var version = "v0.1.0"

// showBanner prints the tool banner.
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
