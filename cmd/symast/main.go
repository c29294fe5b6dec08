package main

import (
	goflag "flag"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/symast"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

func main() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	if err := NewMain(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewMain returns the root command with every subcommand attached.
func NewMain(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "symast",
		Short:         "symast, symbolic bitvector expression renderer",
		Long:          "Reads SMT-LIB bitvector terms and renders them as SMT-LIB or pseudo-code.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(NewRenderCommand().Command())
	rootCmd.AddCommand(NewScriptCommand().Command())
	return rootCmd
}

// inputFlags are shared by commands that read SMT-LIB input.
type inputFlags struct {
	File    string
	Debug   bool
	Sharing bool
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&f.File, "file", "f", "", "input file, defaults to stdin")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&f.Sharing, "sharing", false, "share structurally identical subtrees")
}

// read returns the input text from the file flag or stdin.
func (f *inputFlags) read(cmd *cobra.Command) (string, error) {
	if f.File == "" || f.File == "-" {
		buf, err := io.ReadAll(cmd.InOrStdin())
		return string(buf), err
	}
	buf, err := os.ReadFile(f.File)
	return string(buf), err
}

// logger returns a logger writing to the command's stderr.
func (f *inputFlags) logger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	if f.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// modeValue adapts symast.Mode to the pflag.Value interface.
type modeValue symast.Mode

func (m *modeValue) String() string { return symast.Mode(*m).String() }

func (m *modeValue) Set(s string) error {
	mode, err := symast.ParseMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }
