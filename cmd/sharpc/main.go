// Command sharpc lowers analyzer unit dumps into C.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sharpc/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "sharpc",
	Short:         "C# declaration lowering to C",
	Long:          `sharpc reads analyzer unit dumps, merges partial declarations and emits C sources`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd)
		if err != nil {
			stopProf()
			return err
		}
		runCleanup = func() {
			cleanup()
			stopProf()
		}
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		finish()
	},
}

var runCleanup func()

// finish flushes tracing and profiling once, whichever exit path runs first.
func finish() {
	if runCleanup != nil {
		runCleanup()
		runCleanup = nil
	}
}

// main registers subcommands and persistent flags, then executes the root
// command. A failed command exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per project")
	flags.Int("jobs", 0, "parallel lowering workers (0 = GOMAXPROCS)")
	flags.Bool("no-cache", false, "do not read or write the unit cache")
	flags.String("trace", "", "write trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|phase|unit|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.String("cpuprofile", "", "write CPU profile to file")
	flags.String("memprofile", "", "write heap profile to file on exit")
	flags.String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		finish()
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	mode, err := readUIMode(value)
	if err != nil {
		return false, err
	}
	switch mode {
	case uiModeOn:
		return true, nil
	case uiModeOff:
		return false, nil
	default:
		return isTerminal(f), nil
	}
}
