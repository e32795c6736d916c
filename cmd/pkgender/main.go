package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/fatih/color"
	"github.com/provide-io/pkgender/pkg"
	"github.com/provide-io/pkgender/pkg/config"
	"github.com/provide-io/pkgender/pkg/logging"
	"github.com/provide-io/pkgender/pkg/save/gen4"
	"github.com/spf13/cobra"
)

const version = "0.9.0"

var (
	newName      string
	toggleGender bool
	verifyOnly   bool
	gameFlag     string
	debugFlag    bool
	logLevel     string
	configPath   string
	versionFlag  bool
	rootCmd      *cobra.Command
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func printVersion() {
	fmt.Printf("pkgender %s\n", version)
	fmt.Printf("Built: %s\n", getBuildTimestamp())
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "pkgender <savefile>",
		Short: "Change trainer name and gender in Gen IV saves",
		Long: `Change trainer data (name, gender) in Gen IV Pokémon save files
(Diamond, Pearl, Platinum, HeartGold, SoulSilver).

The save layout is detected by validating both small block checksums.
A backup of the save file is always written next to it before any change.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		Run: runPatch,
	}

	rootCmd.Flags().StringVar(&newName, "name", "", "Change trainer's name (up to 7 letters or digits)")
	rootCmd.Flags().BoolVar(&toggleGender, "gender", false, "Swap trainer's gender")
	rootCmd.Flags().BoolVar(&verifyOnly, "verify-only", false, "Do not edit the save file, only verify checksums")
	rootCmd.Flags().BoolVar(&verifyOnly, "dry-run", false, "Alias for --verify-only")
	rootCmd.Flags().StringVar(&gameFlag, "game", "", "Skip detection and use this layout (hgss, dp, pt)")
	rootCmd.Flags().BoolVarP(&debugFlag, "debug", "d", false, "Enable debug messages")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to pkgender.ini")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(pkg.ExitPanic)
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(pkg.ExitInvalidArgs)
	}
}

func runPatch(cmd *cobra.Command, args []string) {
	if versionFlag {
		printVersion()
		return
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(pkg.ExitInvalidArgs)
	}

	logger := logging.NewLoggerWithOptions(logging.Options{
		Name:  "pkgender",
		Level: logging.ResolveLevel(debugFlag, logLevel, cfg.LogLevel),
		JSON:  cfg.JSONLog,
	})
	if cfg.Path != "" {
		logger.Debug("⚙️ Loaded config", "path", cfg.Path)
	}

	opts := pkg.Options{
		SavePath:   args[0],
		Request:    gen4.ChangeRequest{Gender: toggleGender, Name: newName},
		VerifyOnly: verifyOnly,
		Config:     cfg,
	}
	if gameFlag != "" {
		layout, err := gen4.ParseLayout(gameFlag)
		if err != nil {
			logger.Error("❌ Invalid --game", "error", err)
			os.Exit(pkg.ExitInvalidArgs)
		}
		opts.Game = &layout
	}
	logger.Debug("🔧 Arguments", "save", opts.SavePath, "name", newName, "gender", toggleGender, "verify_only", verifyOnly)

	outcome, err := pkg.Run(opts, logger)
	if err != nil {
		logger.Error("❌ Failed", "error", err)
		os.Exit(pkg.ExitCode(err))
	}

	summary := color.New(color.FgGreen, color.Bold)
	if outcome.Written {
		summary.Fprintf(os.Stdout, "✔ %s save patched: %s (%s)\n", outcome.Layout.Title(), outcome.After.Name, outcome.After.Gender)
		fmt.Fprintf(os.Stdout, "  backup: %s\n", outcome.BackupPath)
	} else {
		summary.Fprintf(os.Stdout, "✔ %s save verified: %s (%s)\n", outcome.Layout.Title(), outcome.Before.Name, outcome.Before.Gender)
	}
}
