package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tldr-pro/po-compiler/flag"
	"github.com/tldr-pro/po-compiler/mo"
)

type showCommand struct {
	cmd *cobra.Command
}

func (v *showCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "show <XX.mo>",
		Short: "Show the messages of an MO file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	return v.cmd
}

func (v showCommand) Execute(args []string) error {
	if len(args) != 1 {
		return NewErrorWithUsage("show requires exactly one argument: <XX.mo>")
	}

	f, err := mo.ReadFile(args[0])
	if err != nil {
		return NewStandardErrorF("%s", err)
	}

	out := v.cmd.OutOrStdout()
	if flag.Verbose() > 0 {
		fmt.Fprintf(out, "MO file: %s (byte order: %s, revision: %d)\n", args[0], f.ByteOrder, f.Revision)
	}
	for _, msg := range f.Messages {
		fmt.Fprintf(out, "%s => %s\n", strconv.Quote(msg.ID), strconv.Quote(msg.Str))
	}
	fmt.Fprintf(out, "%d entries\n", len(f.Messages))
	return nil
}

var showCmd = showCommand{}

func init() {
	rootCmd.AddCommand(showCmd.Command())
}
