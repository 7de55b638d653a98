package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/config"
	"github.com/existflow/glow/internal/logger"
	"github.com/existflow/glow/internal/tui"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
	demoMode   bool
)

var rootCmd = &cobra.Command{
	Use:   "glow",
	Short: "Glow - habit tracker with identity-based scoring",
	Long: `Glow tracks daily and weekly habits across categories, with streaks
and identity-based scores. Completing a habit earns points for every
identity it reinforces; uncompleting one always asks why.

Run 'glow' without arguments to launch the interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
		}

		logConfig := logger.DefaultConfig()
		logConfig.Level = logger.ParseLevel(cfg.LogLevel)
		if cfg.LogFile != "" {
			logConfig.FilePath = cfg.LogFile
		}
		logConfig.Console = cfg.LogConsole

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		logger.Info("Glow started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		logger.Info("Launching TUI")
		m := tui.NewModel(svc, cfg)
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("run TUI: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Glow exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")
	rootCmd.PersistentFlags().BoolVar(&demoMode, "demo", false, "Run against a throwaway in-memory store")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(skipCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(archetypeCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(authCmd)
}
