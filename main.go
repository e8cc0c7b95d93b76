package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/tldr-pro/po-compiler/cmd"
)

const (
	// Program is name for this project
	Program = "po-compiler"
)

func main() {
	resp := cmd.Execute()

	if resp.Err != nil {
		errOut := resp.Cmd.ErrOrStderr()
		if resp.IsUserError() {
			fmt.Fprintf(errOut, "ERROR: %s\n\n", resp.Err)
			fmt.Fprint(errOut, resp.Cmd.UsageString())
		} else {
			fmt.Fprintf(errOut, "ERROR: %s\n", resp.Err)
			subCmdPath := strings.TrimPrefix(resp.Cmd.CommandPath(), Program+" ")
			if subCmdPath == "" {
				subCmdPath = resp.Cmd.Name()
			}
			fmt.Fprintf(errOut, "ERROR: fail to execute \"%s %s\"\n", Program, subCmdPath)
		}
		os.Exit(1)
	}
}
