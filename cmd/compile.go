package cmd

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tldr-pro/po-compiler/config"
	"github.com/tldr-pro/po-compiler/flag"
	"github.com/tldr-pro/po-compiler/repository"
	"github.com/tldr-pro/po-compiler/util"
)

type compileCommand struct {
	cmd *cobra.Command
}

func (v *compileCommand) Command() *cobra.Command {
	if v.cmd != nil {
		return v.cmd
	}

	v.cmd = &cobra.Command{
		Use:   "compile [<XX.po> [<XX.mo>]]",
		Short: "Compile PO files into MO files",
		Long: `Compile gettext PO files into binary MO files.

Without arguments, every *.po file in the languages directory is compiled
to a sibling .mo file. A file which fails to compile is reported and the
remaining files are still compiled.

With one argument, compile that file to its sibling .mo file. With two
arguments, the second one is the destination.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return v.Execute(args)
		},
	}
	v.cmd.Flags().String("dir",
		"",
		"languages directory (default from config, or \"languages\")")
	v.cmd.Flags().Bool("include-header",
		false,
		"write the header entry (msgid \"\") into the MO file")
	v.cmd.Flags().Bool("verify",
		false,
		"read back written MO files and compare the translations")
	v.cmd.Flags().String("fallback-charset",
		"",
		"charset of PO files which are not UTF-8 and declare no charset")
	_ = viper.BindPFlag("compile--dir", v.cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("compile--include-header", v.cmd.Flags().Lookup("include-header"))
	_ = viper.BindPFlag("compile--verify", v.cmd.Flags().Lookup("verify"))
	_ = viper.BindPFlag("compile--fallback-charset", v.cmd.Flags().Lookup("fallback-charset"))
	return v.cmd
}

// options merges command line flags over the loaded configuration.
func (v compileCommand) options(cfg *config.Config) util.CompileOptions {
	flags := v.cmd.Flags()
	opts := util.CompileOptions{
		IncludeHeader:   cfg.IncludeHeaderEnabled(),
		Verify:          cfg.VerifyEnabled(),
		FallbackCharset: cfg.FallbackCharset,
	}
	if flags.Changed("include-header") {
		opts.IncludeHeader = flag.IncludeHeader()
	}
	if flags.Changed("verify") {
		opts.Verify = flag.Verify()
	}
	if flags.Changed("fallback-charset") {
		opts.FallbackCharset = flag.FallbackCharset()
	}
	return opts
}

// languagesDir returns the directory to compile: --dir, then git config,
// then the configuration file. Relative paths are taken from the project
// root.
func (v compileCommand) languagesDir(cfg *config.Config) string {
	if v.cmd.Flags().Changed("dir") {
		return flag.LanguagesDir()
	}
	dir := repository.LanguagesDir()
	if dir == "" {
		dir = cfg.LanguagesDir
	}
	return util.ResolvePath(repository.WorkDirOrCwd(), dir)
}

func (v compileCommand) Execute(args []string) error {
	if len(args) > 2 {
		return NewErrorWithUsage("compile expects at most two arguments: <XX.po> [<XX.mo>]")
	}

	cfg, err := config.LoadConfig(flag.ConfigFile(), repository.WorkDirOrCwd())
	if err != nil {
		return NewStandardErrorF("fail to load configuration: %s", err)
	}
	opts := v.options(cfg)
	out := v.cmd.OutOrStdout()

	if len(args) > 0 {
		src, dst := args[0], ""
		if len(args) == 2 {
			dst = args[1]
		}
		result, err := util.CompileFile(src, dst, opts)
		if err != nil {
			return NewStandardErrorF("fail to compile %s: %s", src, err)
		}
		util.PrintCompileResult(out, result)
		return nil
	}

	dir := v.languagesDir(cfg)
	log.Debugf("compiling PO files in %s", dir)
	result, err := util.CompileDir(dir, opts, out)
	if err != nil {
		if errors.Is(err, util.ErrNoSourceFiles) {
			return NewStandardErrorF("%s", err)
		}
		return err
	}
	if result.Failed() > 0 {
		log.Warnf("%d of %d files failed to compile", result.Failed(), result.Failed()+result.Succeeded())
	}
	return nil
}

var compileCmd = compileCommand{}

func init() {
	rootCmd.AddCommand(compileCmd.Command())
}
