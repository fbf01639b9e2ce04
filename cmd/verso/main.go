package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verso-ui/verso/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦┌─┐┬─┐┌─┐┌─┐
  ╚╗╔╝├┤ ├┬┘└─┐│ │
   ╚╝ └─┘┴└─└─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "verso",
		Short: "Server-driven routing for Go web applications",
		Long: `Verso is a server-driven routing framework for Go.

Declare your page tree once on the server; a thin client keeps the
browser's address bar and history in sync over WebSocket. Features:

  • Declarative page trees with typed path parameters
  • Guards and redirects resolved server-side
  • History push/replace driven by the resolution outcome
  • Prometheus and OpenTelemetry navigation middleware`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newCmd(),
		checkCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		var ve *errors.VersoError
		if stderrors.As(err, &ve) {
			fmt.Fprint(os.Stderr, ve.Format())
		} else {
			fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		}
		os.Exit(1)
	}
}

// printBanner prints the Verso ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
