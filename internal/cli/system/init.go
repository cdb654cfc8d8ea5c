package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitone/internal/cli"
	"github.com/julianstephens/habitone/internal/constants"
	"github.com/julianstephens/habitone/internal/storage"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting existing storage before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	path := ctx.Store.GetConfigPath()

	if c.Force && path != constants.MemoryConfigPath {
		if _, err := os.Stat(path); err == nil {
			// Close first so SQLite releases the file
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing storage: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing storage: %w", err)
			}
			ctx.Printf("Deleted existing storage at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing storage: %w", err)
		}
	}

	err := ctx.Store.Load()
	switch {
	case err == nil:
		ctx.Printf("Storage already initialized at: %s\n", path)
		return nil
	case !errors.Is(err, storage.ErrNotInitialized):
		return err
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized %s storage at: %s\n", constants.AppName, path)
	return nil
}
