package main

import (
	"fmt"

	"github.com/benbjohnson/symast"
	"github.com/benbjohnson/symast/smtlib"
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RenderCommand represents a command for rendering SMT-LIB terms.
type RenderCommand struct {
	inputFlags
	Mode  modeValue
	Dump  bool
	Stats bool
}

// NewRenderCommand returns a new instance of RenderCommand.
func NewRenderCommand() *RenderCommand {
	return &RenderCommand{Mode: modeValue(symast.SMT)}
}

// Command returns the cobra command bound to c.
func (c *RenderCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "render SMT-LIB terms in the selected representation",
		Long: `
Render reads SMT-LIB declarations and terms and prints every resulting node
on its own line. Solver commands are skipped and define-fun entries are
registered so they can be referenced as ref!N.
`[1:],
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd)
		},
	}
	c.register(cmd.Flags())
	cmd.Flags().VarP(&c.Mode, "mode", "m", "representation mode: smt or pseudo")
	cmd.Flags().BoolVar(&c.Dump, "dump", false, "dump the node structure after each rendering")
	cmd.Flags().BoolVar(&c.Stats, "stats", false, "print sharing statistics to stderr")
	return cmd
}

// Run executes the "render" subcommand.
func (c *RenderCommand) Run(cmd *cobra.Command) error {
	text, err := c.read(cmd)
	if err != nil {
		return err
	}

	logger := c.logger(cmd)
	ctx := symast.NewContext(
		symast.WithMode(symast.Mode(c.Mode)),
		symast.WithSharing(c.Sharing),
		symast.WithLogger(logger),
	)
	r := smtlib.NewReader(ctx)
	r.Logger = logger

	nodes, err := r.ReadString(text)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, n := range nodes {
		fmt.Fprintln(w, ctx.Render(n))
		if c.Dump {
			fmt.Fprint(w, spew.Sdump(n))
		}
	}

	if c.Stats {
		stats := ctx.Stats()
		logger.WithFields(logrus.Fields{
			"lookups": stats.CacheLookups,
			"hits":    stats.CacheHits,
			"cached":  stats.CachedNodes,
		}).Info("sharing statistics")
	}
	return nil
}
