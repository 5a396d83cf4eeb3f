package main

import (
	"os"

	"github.com/wonny/brier-terminal/backend/cmd/brier/commands"
)

// main is the entry point for the Brier Terminal CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/brier [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
