package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillsprint/skillsprint/internal/api"
	"github.com/skillsprint/skillsprint/internal/app"
	"github.com/skillsprint/skillsprint/internal/auth"
	"github.com/skillsprint/skillsprint/internal/config"
	"github.com/skillsprint/skillsprint/internal/history"
)

var rootCmd = &cobra.Command{
	Use:   "skillsprint",
	Short: "Daily skill practice from your terminal",
	Long:  "SkillSprint — quick-fire practice sprints, habit tracking, and learning progress, all in the terminal.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("api-url", "", "SkillSprint API base URL (overrides SKILLSPRINT_API_URL)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory for session and history (overrides SKILLSPRINT_DATA_DIR)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(habitsCmd)
	rootCmd.AddCommand(logoutCmd)
}

// loadConfig merges env config with command-line flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.APIBaseURL = u
	}
	if d, _ := cmd.Flags().GetString("data-dir"); d != "" {
		cfg.DataDir = d
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newClient wires the session store and API client the way every
// subcommand needs them: the client reads the persisted token on each
// request.
func newClient(cmd *cobra.Command) (*api.Client, *auth.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	sessions, err := auth.NewStore(dataDir)
	if err != nil {
		return nil, nil, config.Config{}, err
	}
	client := api.New(cfg.APIBaseURL, cfg.Timeout, sessions.Token)
	cfg.DataDir = dataDir
	return client, sessions, cfg, nil
}

func runApp(cmd *cobra.Command) error {
	client, sessions, cfg, err := newClient(cmd)
	if err != nil {
		return err
	}

	// History is best-effort; the TUI runs without it.
	var hist *history.Store
	if dbPath, err := history.DefaultDBPath(cfg.DataDir); err == nil {
		if store, err := history.Open(dbPath); err == nil {
			hist = store
			defer store.Close()
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: sprint history disabled:", err)
		}
	}

	return app.Run(app.Options{
		API:      client,
		Sessions: sessions,
		History:  hist,
	})
}
