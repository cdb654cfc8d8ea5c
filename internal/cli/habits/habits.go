package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitone/internal/cli"
	"github.com/julianstephens/habitone/internal/habit"
	"github.com/julianstephens/habitone/internal/models"
	"github.com/julianstephens/habitone/internal/utils"
)

type HabitAddCmd struct {
	Title string `arg:"" help:"Habit title."`
	Emoji string `arg:"" help:"Emoji shown next to the title."`
}

func (c *HabitAddCmd) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	if strings.TrimSpace(c.Emoji) == "" {
		return fmt.Errorf("habit emoji cannot be empty")
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ctx.AcquireLock(); err != nil {
		return err
	}
	defer ctx.ReleaseLock()

	h := ctx.Habits().Create(strings.TrimSpace(c.Title), strings.TrimSpace(c.Emoji))
	ctx.Printf("Added habit: %s (ID: %s)\n", h.Label(), h.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits := ctx.Habits().Snapshot()

	ctx.Println(utils.FormatHeaderDate(ctx.Clock.Now()))
	if len(habits) == 0 {
		ctx.Println("No habits yet. Add one with: habitone add TITLE EMOJI")
		return nil
	}

	for _, h := range habits {
		ctx.Println(formatHabit(h))
	}

	completed, total, ratio := habit.Progress(habits)
	ctx.Printf("Progress: %d/%d (%d%%)\n", completed, total, habit.Percent(ratio))
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or exact title."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.AcquireLock(); err != nil {
		return err
	}
	defer ctx.ReleaseLock()

	store := ctx.Habits()
	h, ok := store.Find(c.Habit)
	if !ok {
		return fmt.Errorf("habit %q not found", c.Habit)
	}

	store.ToggleCompletion(h.ID)
	h, _ = store.Find(h.ID)
	if h.IsCompleted {
		ctx.Printf("Completed: %s\n", h.Label())
	} else {
		ctx.Printf("Marked incomplete: %s\n", h.Label())
	}
	return nil
}

type HabitResetCmd struct{}

func (c *HabitResetCmd) Run(ctx *cli.Context) error {
	if err := ctx.AcquireLock(); err != nil {
		return err
	}
	defer ctx.ReleaseLock()

	store := ctx.Habits()
	if changed := store.CheckDailyReset(); changed || ctx.ResetOnLoad() {
		ctx.Println("Reset habits completed on a previous day.")
		return nil
	}
	ctx.Println("Nothing to reset.")
	return nil
}

type HabitClearCmd struct {
	Yes bool `help:"Confirm deleting every habit."`
}

func (c *HabitClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		return fmt.Errorf("refusing to clear habits without --yes")
	}
	if err := ctx.AcquireLock(); err != nil {
		return err
	}
	defer ctx.ReleaseLock()

	if err := ctx.Adapter().Clear(); err != nil {
		return err
	}
	ctx.Println("Cleared all habits.")
	return nil
}

func formatHabit(h models.Habit) string {
	mark := " "
	if h.IsCompleted {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, h.Label())
}
