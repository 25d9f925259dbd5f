// Bot is a local-first CLI that reviews a source tree with an LLM running on
// a local inference server.
//
// It walks a directory, filters files by suffix and gitignore-style rules,
// sends each file to the model for review, and writes the response as a
// markdown report under an analysis directory mirroring the source layout.
//
// Usage:
//
//	bot analyze ./src                 # review all .ts files under ./src
//	bot analyze . --pattern .go       # review Go files
//	bot analyze . --overwrite         # re-run existing analyses
//	bot report src/app.ts             # render a stored report
//	bot models list                   # list models on the server
package main

import (
	"os"

	"github.com/gridaco/bot/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
