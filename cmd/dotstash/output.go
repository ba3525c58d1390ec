package dotstash

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/dotstash/pkg/style"
)

// outputFormat resolves --format against stdout.
func outputFormat(cmd *cobra.Command) (style.Format, error) {
	raw, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := style.ParseFormat(raw)
	if err != nil {
		return format, err
	}
	return style.Resolve(format, os.Stdout), nil
}

// printResult writes result as YAML or through render, depending on --format.
func printResult(cmd *cobra.Command, result interface{}, render func(style.Renderer) string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	var out string
	if format == style.FormatYAML {
		out, err = style.RenderYAML(result)
		if err != nil {
			return err
		}
	} else {
		out = render(style.For(format))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
