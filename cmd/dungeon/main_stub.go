//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The windowed dungeon viewer requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/dungeon` or use ./cmd/dungeon-walk for a headless walk.")
	os.Exit(2)
}
