package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tldr-pro/po-compiler/config"
	"github.com/tldr-pro/po-compiler/flag"
	"github.com/tldr-pro/po-compiler/repository"
	"gopkg.in/yaml.v3"
)

type showConfigCommand struct {
	cmd *cobra.Command
}

func (v *showConfigCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "show-config",
		Short: "Show the merged configuration in YAML format",
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	return v.cmd
}

func (v showConfigCommand) Execute(args []string) error {
	if len(args) != 0 {
		return NewErrorWithUsage("show-config needs no arguments")
	}

	cfg, err := config.LoadConfig(flag.ConfigFile(), repository.WorkDirOrCwd())
	if err != nil {
		return NewStandardErrorF("fail to load configuration: %s", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return NewStandardErrorF("fail to marshal configuration: %s", err)
	}

	out := v.cmd.OutOrStdout()
	fmt.Fprintln(out, "# Merged configuration from:")
	fmt.Fprintf(out, "# - ~/%s (lower priority)\n", config.UserConfigFile)
	fmt.Fprintf(out, "# - <repo-root>/%s (higher priority)\n", config.RepoConfigFile)
	if dir := repository.LanguagesDir(); dir != "" {
		fmt.Fprintf(out, "# git config %s overrides languages_dir: %s\n", repository.LanguagesDirConfig, dir)
	}
	fmt.Fprintln(out)
	_, err = out.Write(data)
	return err
}

var showConfigCmd = showConfigCommand{}

func init() {
	rootCmd.AddCommand(showConfigCmd.Command())
}
