package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
)

// startSpinner shows a progress spinner for long-running commands. In
// verbose or debug mode the spinner is suppressed so it does not interleave
// with log lines. The returned cleanup stops the spinner and prints its
// FinalMSG, if one was set.
func startSpinner(message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	// Ignore color errors - continue without a colored spinner if it fails.
	_ = s.Color("cyan")

	if !verbose && !debug {
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	}

	cleanup := func() {
		if !verbose && !debug {
			log.SetOutput(os.Stdout)
		}

		finalMsg := s.FinalMSG
		if finalMsg != "" && !strings.HasSuffix(finalMsg, "\n") {
			finalMsg += "\n"
		}
		// Clear FinalMSG so s.Stop() doesn't print it.
		s.FinalMSG = ""

		if !verbose && !debug {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}
