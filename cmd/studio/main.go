package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"atelier/internal/kvstore"
	"atelier/internal/studio"
)

func main() {
	var (
		dbPath  string
		cfgPath string
	)

	rootCmd := &cobra.Command{
		Use:   "studio",
		Short: "Terminal content manager for the atelier site",
		Long: `Studio is a terminal UI for drafting the projects and posts shown
on the site. Content lives in a local SQLite key-value database next
to the config file.

Keys:
  tab      switch between projects and posts
  n        new item
  enter    edit the selected item
  p        markdown preview
  d        delete (with confirmation)
  t        toggle light/dark theme
  q        quit`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dbPath, cfgPath)
		},
	}

	rootCmd.Flags().StringVar(&dbPath, "db", "", "path to the studio database (overrides config)")
	rootCmd.Flags().StringVar(&cfgPath, "config", "studio.yaml", "path to the studio config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run(dbPath, cfgPath string) error {
	cfg, err := studio.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	store, err := kvstore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	m, err := studio.New(store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
