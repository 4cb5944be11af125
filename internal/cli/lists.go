package cli

import (
	"github.com/spf13/cobra"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print every habit list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			return writeOut(cmd, app, p.lists.Lists())
		},
	}
	cmd.AddCommand(newListsCreateCmd(app))
	cmd.AddCommand(newListsDeleteCmd(app))
	return cmd
}

func newListsCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty habit list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			b := p.newBuilder()
			b.SetName(args[0])
			saved, err := b.Save(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, saved)
		},
	}
}

func newListsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <list-id>",
		Short: "Delete a habit list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			return p.lists.Delete(cmd.Context(), args[0])
		},
	}
}

func newLibraryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "Print the habit library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			items, err := p.library.Load(cmd.Context())
			if err != nil {
				return err
			}
			return writeOut(cmd, app, items)
		},
	}
}
