package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/habitd/internal/commands"
	"github.com/sandeepkv93/habitd/internal/tui"
	"github.com/sandeepkv93/habitd/internal/views"
	"github.com/spf13/cobra"
)

// showRecent caps the completion dates listed by show.
const showRecent = 14

func (c *cli) run(cmd *cobra.Command, command commands.Command) (commands.Result, error) {
	return commands.Execute(cmd.Context(), command, c.service.Handlers())
}

func (c *cli) addCmd() *cobra.Command {
	var description string
	var frequency uint32
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add new habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := commands.AddArgs{Name: args[0]}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("frequency") {
				in.Frequency = &frequency
			}
			res, err := c.run(cmd, commands.Command{Type: commands.TypeAdd, Add: &in})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "habit description")
	cmd.Flags().Uint32Var(&frequency, "frequency", 0, "target number of completions")
	return cmd
}

func (c *cli) listCmd() *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd, commands.Command{Type: commands.TypeList, List: &commands.ListArgs{ActiveOnly: active}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderHabitList(res.Habits, res.Message))
			return nil
		},
	}
	cmd.Flags().BoolVar(&active, "active", true, "only list active habits (--active=false lists all)")
	return cmd
}

func (c *cli) completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <identifier>",
		Short: "Mark habit complete for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd, commands.Command{Type: commands.TypeComplete, Complete: &commands.CompleteArgs{Identifier: args[0]}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func (c *cli) removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <identifier>",
		Short: "Remove habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd, commands.Command{Type: commands.TypeRemove, Remove: &commands.RemoveArgs{Identifier: args[0]}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func (c *cli) editCmd() *cobra.Command {
	var name, description, frequency string
	var active bool
	cmd := &cobra.Command{
		Use:   "edit <identifier>",
		Short: "Edit habit details",
		Long:  `Edit habit details. Pass "null" to --description or --frequency to clear them.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := commands.EditArgs{Identifier: args[0]}
			if cmd.Flags().Changed("name") {
				in.Name = &name
			}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("frequency") {
				in.Frequency = &frequency
			}
			if cmd.Flags().Changed("active") {
				in.Active = &active
			}
			res, err := c.run(cmd, commands.Command{Type: commands.TypeEdit, Edit: &in})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", `new description, or "null" to clear`)
	cmd.Flags().StringVar(&frequency, "frequency", "", `new target frequency, or "null" to clear`)
	cmd.Flags().BoolVar(&active, "active", true, "mark the habit active or inactive")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "show <identifier>",
		Short: "Show habit details and recent completions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd, commands.Command{Type: commands.TypeShow, Show: &commands.ShowArgs{Identifier: args[0]}})
			if err != nil {
				return err
			}
			md := views.HabitMarkdown(*res.Habit, showRecent)
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), views.RenderMarkdown(md))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print markdown without terminal styling")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <sqlite-path>",
		Short: "Export all habits into a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.run(cmd, commands.Command{Type: commands.TypeExport, Export: &commands.ExportArgs{Path: args[0]}})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Message)
			return nil
		},
	}
}

func (c *cli) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and complete habits interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program := tea.NewProgram(tui.NewModel(c.service), tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("habit tui failed: %w", err)
			}
			return nil
		},
	}
}
