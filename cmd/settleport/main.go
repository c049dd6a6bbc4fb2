package main

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/poweradmin/settleport/internal/logger"
	"github.com/poweradmin/settleport/internal/tui/theme"
)

const (
	logoText1 = "█▀ █▀▀ ▀█▀ ▀█▀ █   █▀▀ █▀█ █▀█ █▀█ ▀█▀"
	logoText2 = "▄█ ██▄  █   █  █▄▄ ██▄ █▀  █▄█ █▀▄  █"
)

// Version set via ldflags during build
var version = "dev"

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "settleport",
	Short: "Self-service settlement claimant portal with a terminal UI",
	RunE:  runPortal,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	// Set Long description with logo
	rootCmd.Long = renderLogo() + `

settleport walks settlement claimants through their disbursement:
login with claimant ID and PIN, confirm the state of residence, review
the settlement statement, sign the release of claims, and choose how to
receive payment. Completed steps are recorded in embedded NATS JetStream,
and the confirmation receipt can be saved as a markdown document.`

	rootCmd.AddCommand(configCmd)
}
