package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/das/cmd/das"
	"github.com/arthur-debert/das/pkg/config"
	"github.com/arthur-debert/das/pkg/status"
)

func main() {
	rootCmd := das.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		styles := status.DefaultStyles(status.NewRenderer(os.Stderr, status.UseColor(config.ColorAuto, os.Stderr)))
		fmt.Fprintln(os.Stderr, styles.Render("Error", fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
