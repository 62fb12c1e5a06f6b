package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mchmarny/scorekit/pkg/data"
	"github.com/mchmarny/scorekit/pkg/score"
	urfave "github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const (
	flagLeft   = "left"
	flagRight  = "right"
	flagScalar = "scalar"
	flagOp     = "op"
	flagUnary  = "unary"
	flagDigits = "digits"
	flagSave   = "save"

	unaryNeg   = "neg"
	unaryPos   = "pos"
	unaryAbs   = "abs"
	unaryRound = "round"
)

func newCombineCmd() *urfave.Command {
	return &urfave.Command{
		Name:   "combine",
		Usage:  "Combine a score set with another set or a scalar",
		Action: cmdCombine,
		Flags: []urfave.Flag{
			newSourceFlag(flagLeft, "l", "file"),
			&urfave.StringFlag{
				Name:    flagRight,
				Aliases: []string{"r"},
				Usage:   "Right operand: file path, http(s) URL or set:<name>",
			},
			&urfave.StringFlag{
				Name:  flagScalar,
				Usage: "Right operand as a single number applied to every item",
			},
			&urfave.StringFlag{
				Name:  flagOp,
				Usage: "Operator [+, -, *, /, //, %, **, &, |] or its name [add, sub, mul, div, floordiv, mod, pow, min, max]",
			},
			&urfave.StringFlag{
				Name:  flagUnary,
				Usage: "Unary operation applied after the operator [neg, pos (keep positive scores), abs, round]",
			},
			&urfave.IntFlag{
				Name:  flagDigits,
				Usage: "Decimal digits kept by --unary round (default from config)",
			},
			&urfave.StringFlag{
				Name:  flagSave,
				Usage: "Also store the result under this set name",
			},
			&urfave.StringFlag{
				Name:  flagOrder,
				Usage: "Sort the output by score [asc, desc] (default: key order of the left operand)",
			},
		},
	}
}

func cmdCombine(ctx context.Context, cmd *urfave.Command) error {
	cfg, err := getConfig(cmd)
	if err != nil {
		return err
	}

	opName := cmd.String(flagOp)
	right := cmd.String(flagRight)
	scalar := cmd.String(flagScalar)
	unary := cmd.String(flagUnary)

	if opName == "" && unary == "" {
		return errors.New("either --op or --unary is required")
	}
	if opName != "" && (right == "") == (scalar == "") {
		return errors.New("--op requires exactly one of --right or --scalar")
	}

	// operands load concurrently, either may be a remote URL
	var left, other *score.Scorer[string]
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := loadSource(gctx, cfg, cmd.String(flagLeft))
		if err != nil {
			return fmt.Errorf("left: %w", err)
		}
		left = s
		return nil
	})
	if right != "" {
		g.Go(func() error {
			s, err := loadSource(gctx, cfg, right)
			if err != nil {
				return fmt.Errorf("right: %w", err)
			}
			other = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	res := left
	if opName != "" {
		op, err := score.ParseOp(opName)
		if err != nil {
			return err
		}
		if other != nil {
			res, err = left.Apply(op, other)
		} else {
			var v score.Value
			if v, err = score.Parse(scalar); err != nil {
				return fmt.Errorf("scalar: %w", err)
			}
			res, err = left.ApplyScalar(op, v)
		}
		if err != nil {
			return fmt.Errorf("applying %s: %w", op, err)
		}
		slog.Debug("combined", "op", op.String(), "left", left.Len(), "result", res.Len())
	}

	digits := cfg.Digits
	if cmd.IsSet(flagDigits) {
		digits = cmd.Int(flagDigits)
	}
	if res, err = applyUnary(res, unary, digits); err != nil {
		return err
	}

	if name := cmd.String(flagSave); name != "" {
		db, err := cfg.DB()
		if err != nil {
			return err
		}
		if err := data.SaveSet(db, name, res); err != nil {
			return err
		}
		slog.Debug("result saved", "set", name, "items", res.Len())
	}

	if order := cmd.String(flagOrder); order != "" {
		items, err := rankItems(res, order, 0, false)
		if err != nil {
			return err
		}
		return encode(cmd, items)
	}
	return encode(cmd, res.Items())
}

func applyUnary(s *score.Scorer[string], name string, digits int) (*score.Scorer[string], error) {
	switch strings.ToLower(name) {
	case "":
		return s, nil
	case unaryPos:
		return s.FilterPositive(), nil
	case unaryNeg:
		return s.Negate(), nil
	case unaryAbs:
		return s.Abs(), nil
	case unaryRound:
		return s.Round(digits), nil
	default:
		return nil, fmt.Errorf("invalid unary operation: %q", name)
	}
}
