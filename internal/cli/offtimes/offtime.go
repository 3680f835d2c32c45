package offtimes

import (
	"fmt"

	"github.com/julianstephens/harmony/internal/cli"
	"github.com/julianstephens/harmony/internal/models"
	"github.com/julianstephens/harmony/internal/state"
)

// OffTimeAddCmd creates an off-time covering today, optionally adjusted by
// flags.
type OffTimeAddCmd struct {
	Kind  string `arg:"" enum:"single,range,weekend" help:"Off-time kind (single|range|weekend)."`
	Label string `short:"l" help:"Label. Defaults to the kind's label."`
	Start string `short:"s" help:"Start date (YYYY-MM-DD). Defaults to today."`
	End   string `short:"e" help:"End date (YYYY-MM-DD). Ignored for single and weekend."`
}

func (c *OffTimeAddCmd) Run(ctx *cli.Context) error {
	kind, err := models.ParseOffTimeKind(c.Kind)
	if err != nil {
		return err
	}
	off := models.NewOffTime(kind, ctx.Today())
	if c.Label != "" {
		off.Label = c.Label
	}
	if c.Start != "" {
		if off.StartDate, err = cli.ResolveDate(c.Start, ctx.Clock()); err != nil {
			return err
		}
		off.EndDate = off.StartDate
	}
	if c.End != "" && kind == models.OffTimeRange {
		if off.EndDate, err = cli.ResolveDate(c.End, ctx.Clock()); err != nil {
			return err
		}
	}

	if err := ctx.State.Dispatch(state.AddOffTime{OffTime: off}); err != nil {
		return fmt.Errorf("invalid off-time: %w", err)
	}
	ctx.Printf("Added off-time: %s (ID: %s)\n", off.Label, cli.ShortID(off.ID))
	return nil
}

type OffTimeListCmd struct{}

func (c *OffTimeListCmd) Run(ctx *cli.Context) error {
	offTimes := ctx.State.Snapshot().OffTimes
	if len(offTimes) == 0 {
		ctx.Println("No off-times.")
		return nil
	}
	for _, o := range offTimes {
		ctx.Printf("%s  %-8s %s\n", cli.ShortID(o.ID), o.Kind, describe(o))
	}
	return nil
}

func describe(o models.OffTime) string {
	switch o.Kind {
	case models.OffTimeWeekend:
		return o.Label + " (every weekend)"
	case models.OffTimeSingle:
		return fmt.Sprintf("%s on %s", o.Label, o.StartDate)
	default:
		return fmt.Sprintf("%s from %s to %s", o.Label, o.StartDate, o.EndDate)
	}
}

// OffTimeSetStartCmd changes the start date. A single-day off-time moves its
// end date along with it.
type OffTimeSetStartCmd struct {
	ID   string `arg:"" help:"Off-time ID (or unique prefix)."`
	Date string `arg:"" help:"New start date (YYYY-MM-DD)."`
}

func (c *OffTimeSetStartCmd) Run(ctx *cli.Context) error {
	return setDate(ctx, c.ID, c.Date, true)
}

type OffTimeSetEndCmd struct {
	ID   string `arg:"" help:"Off-time ID (or unique prefix)."`
	Date string `arg:"" help:"New end date (YYYY-MM-DD)."`
}

func (c *OffTimeSetEndCmd) Run(ctx *cli.Context) error {
	return setDate(ctx, c.ID, c.Date, false)
}

func setDate(ctx *cli.Context, id, date string, start bool) error {
	off, err := cli.OffTimeByID(ctx.State.Snapshot(), id)
	if err != nil {
		return err
	}
	if !start && off.Kind != models.OffTimeRange {
		return fmt.Errorf("%s is a %s off-time; only range off-times have an end date to set", off.Label, off.Kind)
	}
	date, err = cli.ResolveDate(date, ctx.Clock())
	if err != nil {
		return err
	}
	patch := state.OffTimePatch{EndDate: &date}
	if start {
		patch = state.OffTimePatch{StartDate: &date}
	}
	if err := ctx.State.Dispatch(state.UpdateOffTime{ID: off.ID, Patch: patch}); err != nil {
		return fmt.Errorf("failed to update off-time: %w", err)
	}
	updated, err := cli.OffTimeByID(ctx.State.Snapshot(), off.ID)
	if err != nil {
		return err
	}
	ctx.Println("Updated off-time:", describe(updated))
	return nil
}

type OffTimeDeleteCmd struct {
	ID string `arg:"" help:"Off-time ID (or unique prefix) to delete."`
}

func (c *OffTimeDeleteCmd) Run(ctx *cli.Context) error {
	off, err := cli.OffTimeByID(ctx.State.Snapshot(), c.ID)
	if err != nil {
		return err
	}
	if err := ctx.State.Dispatch(state.DeleteOffTime{ID: off.ID}); err != nil {
		return fmt.Errorf("failed to delete off-time: %w", err)
	}
	ctx.Printf("Deleted off-time: %s\n", off.Label)
	return nil
}
