// Command airabsorb applies air absorption to synthetic impulse responses
// and reports what it did.
//
// Usage:
//
//	airabsorb [--config file.yaml] [--log-level level] <command> [flags]
//
// Commands:
//
//	bands   - print the band partition with absorption and speed of sound
//	render  - synthesise an impulse response, apply absorption and print
//	          per-band energy loss and decay metrics
//
// Every band parameter can be set in the YAML file and overridden by a flag:
//
//	airabsorb bands --divisions 10
//	airabsorb render --signal noise --rt60 1.2 --humidity 30
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-airabsorb/cmd/airabsorb/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
