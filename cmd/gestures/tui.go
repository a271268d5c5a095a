// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gioui.org/x/multitouch/internal/surface"
	"gioui.org/x/multitouch/internal/tui"
)

var logFile string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Recognize mouse gestures in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The terminal is taken; log to a file or nowhere.
		logger.SetOutput(io.Discard)
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			logger.SetOutput(f)
		}
		s := surface.New(cfg, logger)
		defer s.Close()
		return tui.Run(s)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	rootCmd.AddCommand(tuiCmd)
}
