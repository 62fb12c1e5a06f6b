package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchmarny/scorekit/pkg/data"
	urfave "github.com/urfave/cli/v3"
)

const flagName = "name"

func newNameFlag() *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:     flagName,
		Aliases:  []string{"n"},
		Usage:    "Name of the stored score set",
		Required: true,
	}
}

func newStoreCmd() *urfave.Command {
	return &urfave.Command{
		Name:  "store",
		Usage: "Manage score sets saved in the local database",
		Commands: []*urfave.Command{
			{
				Name:   "save",
				Usage:  "Save a score set under a name, replacing any previous set",
				Action: cmdStoreSave,
				Flags: []urfave.Flag{
					newNameFlag(),
					newSourceFlag(flagSource, "s", "file"),
				},
			},
			{
				Name:   "list",
				Usage:  "List saved score sets",
				Action: cmdStoreList,
			},
			{
				Name:   "show",
				Usage:  "Print the items of a saved score set",
				Action: cmdStoreShow,
				Flags: []urfave.Flag{
					newNameFlag(),
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete a saved score set",
				Action: cmdStoreDelete,
				Flags: []urfave.Flag{
					newNameFlag(),
				},
			},
		},
	}
}

func cmdStoreSave(ctx context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	s, err := loadSource(ctx, cfg, cmd.String(flagSource))
	if err != nil {
		return err
	}

	db, err := cfg.DB()
	if err != nil {
		return err
	}

	name := cmd.String(flagName)
	if err := data.SaveSet(db, name, s); err != nil {
		return err
	}
	slog.Debug("set saved", "name", name, "items", s.Len())

	return encode(cmd, &data.SetInfo{Name: name, Items: s.Len()})
}

func cmdStoreList(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	db, err := cfg.DB()
	if err != nil {
		return err
	}

	list, err := data.ListSets(db)
	if err != nil {
		return err
	}
	return encode(cmd, list)
}

func cmdStoreShow(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	db, err := cfg.DB()
	if err != nil {
		return err
	}

	s, err := data.GetSet(db, cmd.String(flagName))
	if err != nil {
		return err
	}
	return encode(cmd, s.Items())
}

func cmdStoreDelete(_ context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}
	db, err := cfg.DB()
	if err != nil {
		return err
	}

	name := cmd.String(flagName)
	ok, err := data.DeleteSet(db, name)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", name, data.ErrSetNotFound)
	}
	slog.Debug("set deleted", "name", name)
	return nil
}
