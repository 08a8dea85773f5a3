// Command ltitool inspects and transforms LTI systems stored in YAML, TOML
// or JSON files.
//
// Usage:
//
//	ltitool [command] [flags]
//
// Examples:
//
//	ltitool residue system.yaml
//	ltitool residuez -o json filter.toml
//	ltitool sftrans --freq 100 --freq 400 prototype.yaml
//	ltitool butter --order 4 --freq 1000 --fs 48000 --form sos
//	ltitool freqz --points 16 --fs 48000 filter.toml
//	ltitool impulse --samples 64 filter.toml
package main

import (
	"os"

	"github.com/ZOwl/signal-processing/cmd/ltitool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
