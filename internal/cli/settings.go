package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cardsheet/pkg/config"
	"github.com/matzehuels/cardsheet/pkg/errors"
	"github.com/matzehuels/cardsheet/pkg/layout"
)

func (c *CLI) settingsCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show, create or edit the settings file",
	}
	cmd.PersistentFlags().StringVar(&path, "settings", "", "settings file (default $CARDSHEET_SETTINGS or "+config.DefaultFile+")")

	resolve := func() string {
		if path != "" {
			return path
		}
		return config.DefaultPath()
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := resolve()
			s, err := config.Load(p)
			if err != nil {
				return err
			}
			printSettings(p, s)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := resolve()
			if _, err := os.Stat(p); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", p)
			}
			if err := config.Save(p, layout.DefaultSettings()); err != nil {
				return err
			}
			printSuccess("Wrote default settings")
			printFile(p)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Edit the settings file interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := resolve()
			s, err := config.Load(p)
			if err != nil {
				return err
			}
			final, err := tea.NewProgram(newSettingsModel(s), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			m := final.(settingsModel)
			if !m.saved {
				printInfo("Settings unchanged")
				return nil
			}
			if err := config.Save(p, m.settings); err != nil {
				return err
			}
			printSuccess("Saved settings")
			printFile(p)
			return nil
		},
	})

	return cmd
}

func printSettings(path string, s layout.Settings) {
	fmt.Fprintln(stdout, StyleTitle.Render("Settings")+" "+StyleDim.Render(path))
	rows := make([][]string, 0, len(settingsFields))
	for _, f := range settingsFields {
		rows = append(rows, []string{f.key, f.get(s), f.unit})
	}
	printTable([]string{"Key", "Value", "Unit"}, rows)

	if err := layout.Validate(s); err != nil {
		printWarning("%s", errors.UserMessage(err))
	}
}
