package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	repository "github.com/okian/herodex/internal/adapters/repository"
	"github.com/okian/herodex/internal/domain/compare"
	"github.com/okian/herodex/internal/domain/hero"
)

const defaultCatalog = "data/heroes.json"

type rootOptions struct {
	catalog string
	timeout time.Duration
	retries int
}

// NewRootCmd builds the duel command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "duel <id1> <id2>",
		Short: "Compare two heroes category by category",
		Long: `duel loads a hero catalog from a local JSON/YAML file or an http(s) URL
and compares two heroes across intelligence, strength, speed, durability,
power and combat. The hero winning more categories wins overall.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			res, err := compare.New(store).Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printDuel(cmd.Context(), cmd.OutOrStdout(), store, res)
		},
	}

	root.PersistentFlags().StringVarP(&opts.catalog, "catalog", "c", defaultCatalog, "catalog file path or http(s) URL")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "remote catalog fetch timeout")
	root.PersistentFlags().IntVar(&opts.retries, "retries", 2, "remote catalog fetch retries")

	root.AddCommand(newListCmd(opts))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "duel:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) source() repository.Source {
	if strings.HasPrefix(o.catalog, "http://") || strings.HasPrefix(o.catalog, "https://") {
		return repository.Source{URL: o.catalog}
	}
	return repository.Source{Path: o.catalog}
}

func (o *rootOptions) open(ctx context.Context) (*repository.MemoryStore, error) {
	heroes, err := repository.Load(ctx, o.source(),
		repository.WithFetchTimeout(o.timeout),
		repository.WithRetries(o.retries),
	)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", o.source(), err)
	}
	return repository.NewMemoryStore(heroes)
}

func printDuel(ctx context.Context, out io.Writer, acc hero.Accessor, res compare.Result) error {
	first, err := acc.Lookup(ctx, res.ID1)
	if err != nil {
		return err
	}
	second, err := acc.Lookup(ctx, res.ID2)
	if err != nil {
		return err
	}
	name := func(w compare.Winner) string {
		switch w {
		case compare.First:
			return first.Name
		case compare.Second:
			return second.Name
		default:
			return "tie"
		}
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "CATEGORY\t%s (#%d)\t%s (#%d)\tWINNER\n", first.Name, first.ID, second.Name, second.ID)
	for _, c := range res.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.Category, c.Value1, c.Value2, name(c.Winner))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	w1, w2 := res.Wins()
	_, err = fmt.Fprintf(out, "\noverall: %s (%d-%d)\n", name(res.Overall), w1, w2)
	return err
}
