package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mchmarny/scorekit/pkg/score"
	urfave "github.com/urfave/cli/v3"
)

const (
	orderAsc  = "asc"
	orderDesc = "desc"
)

const (
	flagK      = "k"
	flagBottom = "bottom"
	flagMedian = "median"
	flagOrder  = "order"
)

func newSourceFlag(name string, aliases ...string) *urfave.StringFlag {
	return &urfave.StringFlag{
		Name:     name,
		Aliases:  aliases,
		Usage:    sourceUsage,
		Required: true,
	}
}

func newRankCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "rank",
		Usage:  "Rank the items of a score set",
		Action: cmdRank,
		Flags: []urfave.Flag{
			newSourceFlag(flagSource, "s", "file"),
			&urfave.IntFlag{
				Name:  flagK,
				Usage: "Number of items: positive for the top, negative for the bottom, 0 for all (default from config)",
			},
			&urfave.BoolFlag{
				Name:  flagBottom,
				Usage: "List the k lowest scoring items instead of the highest",
			},
			&urfave.BoolFlag{
				Name:  flagMedian,
				Usage: "Print the lower median item",
			},
			&urfave.StringFlag{
				Name:  flagOrder,
				Usage: "List every item sorted by score [asc, desc]",
			},
		},
	}
}

func cmdRank(ctx context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	if err := checkRankFlags(cmd); err != nil {
		return err
	}

	s, err := loadSource(ctx, cfg, cmd.String(flagSource))
	if err != nil {
		return err
	}

	if cmd.Bool(flagMedian) {
		med, err := s.Median()
		if err != nil {
			return fmt.Errorf("median: %w", err)
		}
		return encode(cmd, med)
	}

	items, err := rankItems(s, cmd.String(flagOrder), kFor(cmd, cfg.DefaultK), cmd.Bool(flagBottom))
	if err != nil {
		return err
	}
	return encode(cmd, items)
}

// checkRankFlags rejects flag combinations where one selection would
// silently override the other.
func checkRankFlags(cmd *urfave.Command) error {
	limited := cmd.IsSet(flagK) || cmd.Bool(flagBottom)
	ordered := cmd.String(flagOrder) != ""
	switch {
	case cmd.Bool(flagMedian) && (limited || ordered):
		return errors.New("--median cannot be combined with --k, --bottom or --order")
	case ordered && limited:
		return errors.New("--order lists every item and cannot be combined with --k or --bottom")
	}
	return nil
}

func kFor(cmd *urfave.Command, def int) int {
	if cmd.IsSet(flagK) {
		return cmd.Int(flagK)
	}
	return def
}

func rankItems(s *score.Scorer[string], order string, k int, bottom bool) ([]score.Item[string], error) {
	var items []score.Item[string]
	var err error
	switch strings.ToLower(order) {
	case orderAsc:
		items, err = s.Ascending()
	case orderDesc:
		items, err = s.Descending()
	case "":
		if bottom {
			items, err = s.BottomK(k)
		} else {
			items, err = s.TopK(k)
		}
	default:
		return nil, fmt.Errorf("invalid order: %q", order)
	}
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	return items, nil
}
