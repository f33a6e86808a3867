package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kode4food/tandem"
	"github.com/kode4food/tandem/join"
	"github.com/kode4food/tandem/join/config"
	"github.com/kode4food/tandem/window"
)

// joinSettings are the resolved settings of a join run
type joinSettings struct {
	logger    *slog.Logger
	variant   string
	retention string
	separator string
	name      string
}

// Unlimited is the retention setting for a window that never evicts
const Unlimited = "unlimited"

var joinCmd = &cobra.Command{
	Use:   "join [file]",
	Short: "Join JSON-lines records read from a file or stdin",
	Long: `Reads JSON-lines records of the form

  {"side":"left","key":0,"value":"X0","timestamp":0}

and writes one {"key":..,"value":..} line per joined record. Left values
and right values are concatenated with the separator.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return viper.BindPFlags(cmd.Flags())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()
			in = f
		}
		logger, err := makeLogger(cmd.ErrOrStderr(), viper.GetString("log-level"))
		if err != nil {
			return err
		}
		return runJoin(in, cmd.OutOrStdout(), joinSettings{
			logger:    logger,
			variant:   viper.GetString("variant"),
			retention: viper.GetString("retention"),
			separator: viper.GetString("separator"),
			name:      viper.GetString("name"),
		})
	},
}

func init() {
	joinCmd.Flags().String("variant", "symmetric", "join variant (symmetric, prior)")
	joinCmd.Flags().String("retention", Unlimited,
		"window retention in ticks, or 'unlimited'",
	)
	joinCmd.Flags().String("separator", "+", "separator placed between joined values")
	joinCmd.Flags().String("name", "tandem", "operator name used in logs and metrics")
}

func runJoin(in io.Reader, out io.Writer, s joinSettings) error {
	opts, err := s.options()
	if err != nil {
		return err
	}
	op, err := tandem.NewJoin(
		join.Joiner(func(l, r string) string {
			return l + s.separator + r
		}),
		recordWriter(out),
		opts...,
	)
	if err != nil {
		return err
	}
	defer func() { _ = op.Close() }()

	rr := newRecordReader(in)
	for {
		side, key, value, ts, err := rr.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := join.Deliver(op, side, key, value, ts); err != nil {
			return fmt.Errorf("record %d: %w", rr.line, err)
		}
	}
}

func (s joinSettings) options() ([]config.Option, error) {
	v, err := join.ParseVariant(s.variant)
	if err != nil {
		return nil, err
	}
	res := []config.Option{config.Variant(v), config.Name(s.name)}
	if s.logger != nil {
		res = append(res, config.Logger(s.logger))
	}

	switch r := strings.TrimSpace(s.retention); r {
	case "", Unlimited:
		return append(res, config.Unlimited), nil
	default:
		span, err := strconv.ParseInt(r, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", config.ErrInvalidRetention, r)
		}
		return append(res, config.Retention(window.Timestamp(span))), nil
	}
}

func makeLogger(w io.Writer, level string) (*slog.Logger, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: l,
	})), nil
}
