package main

import (
	"fmt"

	"github.com/benbjohnson/symast"
	"github.com/benbjohnson/symast/smtlib"
	"github.com/spf13/cobra"
)

// ScriptCommand represents a command for building a solver script from
// constraints.
type ScriptCommand struct {
	inputFlags
}

// NewScriptCommand returns a new instance of ScriptCommand.
func NewScriptCommand() *ScriptCommand {
	return &ScriptCommand{}
}

// Command returns the cobra command bound to c.
func (c *ScriptCommand) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "build a complete SMT-LIB script from 1-bit constraints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd)
		},
	}
	c.register(cmd.Flags())
	return cmd
}

// Run executes the "script" subcommand.
func (c *ScriptCommand) Run(cmd *cobra.Command) error {
	text, err := c.read(cmd)
	if err != nil {
		return err
	}

	logger := c.logger(cmd)
	ctx := symast.NewContext(symast.WithSharing(c.Sharing), symast.WithLogger(logger))
	r := smtlib.NewReader(ctx)
	r.Logger = logger

	nodes, err := r.ReadString(text)
	if err != nil {
		return err
	}

	s, err := ctx.Script(nodes...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), s)
	return err
}
