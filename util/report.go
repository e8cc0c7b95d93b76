package util

import (
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ReportWarnAndErrors logs messages collected during a batch. They are
// warnings when ok is true, errors otherwise.
func ReportWarnAndErrors(msgs []string, prompt string, ok bool) {
	if ok {
		reportResultMessages(msgs, prompt, log.WarnLevel)
	} else {
		reportResultMessages(msgs, prompt, log.ErrorLevel)
	}
}

func reportResultMessages(msgs []string, prompt string, level log.Level) {
	if len(msgs) == 0 {
		return
	}

	fn := log.Errorf
	if level == log.WarnLevel {
		fn = log.Warnf
	}

	showHorizontalLine()
	for _, msg := range msgs {
		for _, line := range strings.Split(msg, "\n") {
			switch {
			case prompt == "":
				fn("%s", line)
			case line == "":
				fn("%s", prompt)
			default:
				fn("%s\t%s", prompt, line)
			}
		}
	}
}

func showHorizontalLine() {
	fmt.Fprintln(os.Stderr, strings.Repeat("-", 78))
}
