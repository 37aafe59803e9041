// Package main is the entry point for the tip CLI.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tip-cli/tip/internal/app"
	"github.com/tip-cli/tip/internal/buildinfo"
	"github.com/tip-cli/tip/internal/config"
	clierrors "github.com/tip-cli/tip/internal/errors"
	"github.com/tip-cli/tip/internal/observability"
	"github.com/tip-cli/tip/internal/output"
	"github.com/tip-cli/tip/internal/terminal"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "none"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	// Restore cursor visibility on panic: if the event loop panics mid-frame
	// the terminal would otherwise be left with the cursor hidden.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprint(os.Stderr, "\033[?25h")
			panic(r)
		}
	}()

	buildinfo.Version = version

	out := output.Default()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		return handleError(out, err)
	}

	return clierrors.ExitSuccess
}

// newRootCmd builds the single pass-through command (§6): everything after
// the program name belongs to the target command, not to tip itself, so
// flag parsing is disabled and Cobra is used only for dispatch. Usage
// output is silenced; a zero-argument invocation is rejected by Args with
// CommandMissing, whose hint carries the usage line.
func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tip <cmd> [<args>...]",
		Short: "Type-to-interact front end for any subprocess",
		Long: `tip re-runs <cmd> [<args>...] with a live-edited query appended as its
final argument every time you type, streaming its output into the lower
half of the screen. Press Return to accept the current query and replay
the final command with its standard output inherited; Ctrl-C or a bare
Escape cancels.`,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return clierrors.CommandMissing()
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTip(cmd, args)
		},
	}
}

func runTip(cmd *cobra.Command, args []string) error {
	logger, cleanup, err := observability.NewLogger(&observability.Config{
		Level:          envOrDefault("TIP_LOG_LEVEL", "info"),
		Format:         envOrDefault("TIP_LOG_FORMAT", "json"),
		LogFile:        os.Getenv("TIP_LOG_FILE"),
		StderrMode:     envOrDefault("TIP_LOG_STDERR", "auto"),
		InteractiveTTY: terminal.StdinIsTerminal(),
		SessionID:      uuid.NewString(),
		CommandPath:    cmd.CommandPath(),
		Version:        version,
		Commit:         commit,
	})
	if err != nil {
		return clierrors.Wrap(clierrors.ExitUsage, "invalid logging configuration", err)
	}

	defer func() {
		if cleanup != nil {
			_ = cleanup()
		}
	}()

	slog.SetDefault(logger)

	command, childArgs := args[0], args[1:]

	stdin, err := captureStdin()
	if err != nil {
		return clierrors.StdinReadFailed(err)
	}

	cfg := config.Load()

	result, err := app.Run(command, childArgs, stdin, cfg)
	if err != nil {
		var decodeErr *terminal.DecodeError
		if errors.As(err, &decodeErr) {
			return clierrors.DecodeFailed(err)
		}

		return clierrors.TTYOpenFailed(err)
	}

	if !result.Accepted {
		return nil
	}

	return acceptFinal(command, childArgs, result.Query, stdin)
}

// captureStdin implements §6: if tip's own stdin is a terminal, nothing is
// captured and spawned children receive the null device instead; otherwise
// the entire stream is buffered up front and piped to every spawn.
func captureStdin() ([]byte, error) {
	if terminal.StdinIsTerminal() {
		return nil, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}

	return data, nil
}

// acceptFinal re-runs the accepted command with the captured stdin piped in
// and the child's standard output inherited by tip's own (§6 acceptance).
func acceptFinal(command string, args []string, query string, stdin []byte) error {
	finalArgs := args
	if query != "" {
		finalArgs = append(append([]string{}, args...), query)
	}

	child := exec.Command(command, finalArgs...)
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if stdin != nil {
		child.Stdin = bytes.NewReader(stdin)
	}

	if err := child.Run(); err != nil {
		return clierrors.FinalRunFailed(err)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

// handleError formats a top-level error for display and returns its exit
// code.
func handleError(out *output.Writer, err error) int {
	var cliErr *clierrors.CLIError
	if clierrors.As(err, &cliErr) {
		out.Failure("%s", cliErr.Message)

		if cliErr.Hint != "" {
			out.Info("%s", cliErr.Hint)
		}

		return cliErr.Code
	}

	out.Failure("%s", err.Error())

	return clierrors.ExitGeneral
}
