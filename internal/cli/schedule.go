package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-planner/internal/core/domain"
)

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show the list scheduled for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			return writeOut(cmd, app, p.schedule.TodaysAssignment())
		},
	}
}

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Inspect and edit the weekly schedule",
	}
	cmd.AddCommand(newScheduleShowCmd(app))
	cmd.AddCommand(newScheduleAssignCmd(app))
	cmd.AddCommand(newScheduleSwapCmd(app))
	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the seven schedule slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			return writeOut(cmd, app, p.schedule.Items())
		},
	}
}

func newScheduleAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <day> [list-id]",
		Short: "Assign a list to a day; omit the list id to clear the day",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := domain.ParseDay(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}

			var listID *string
			if len(args) == 2 && args[1] != "-" {
				listID = &args[1]
			}

			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			if listID != nil {
				if _, ok := p.lists.FindByID(*listID); !ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: no list with id %s\n", *listID)
				}
			}

			if err := p.schedule.AssignListToDay(cmd.Context(), day, listID); err != nil {
				return err
			}
			return writeOut(cmd, app, p.schedule.Items())
		},
	}
}

// parseDaySlot accepts either a day name or its 0-based index.
func parseDaySlot(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	day, err := domain.ParseDay(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", err, s)
	}
	return day.Index(), nil
}

func newScheduleSwapCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <from> <to>",
		Short: "Swap the lists of two days (names or 0-6 indices)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseDaySlot(args[0])
			if err != nil {
				return err
			}
			to, err := parseDaySlot(args[1])
			if err != nil {
				return err
			}

			p, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer p.Close()

			if err := p.schedule.ReorderBySwap(cmd.Context(), from, to); err != nil {
				return err
			}
			return writeOut(cmd, app, p.schedule.Items())
		},
	}
}
