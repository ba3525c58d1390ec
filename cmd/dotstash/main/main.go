package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotstash/cmd/dotstash"
	"github.com/arthur-debert/dotstash/pkg/style"
)

func main() {
	rootCmd := dotstash.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := style.For(style.DetectFormat(os.Stderr))
		fmt.Fprintln(os.Stderr, renderer.RenderError(err))
		os.Exit(1)
	}
}
