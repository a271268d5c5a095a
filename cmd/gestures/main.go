// SPDX-License-Identifier: Unlicense OR MIT

// Command gestures runs the multi-touch gesture recognizers on
// scripted, terminal or WebSocket input.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gioui.org/x/multitouch/gesture"
	"gioui.org/x/multitouch/internal/config"
)

var (
	cfgPath  string
	logLevel string

	cfg    = config.Default()
	logger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "gestures",
	Short: "Multi-touch gesture recognition demo",
	Long:  mainUsage,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error), overrides the configuration")
	logger.SetOutput(os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gestures: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration and configures logging.
func setup() error {
	c := config.Default()
	if cfgPath != "" {
		var err error
		if c, err = config.Load(cfgPath); err != nil {
			return err
		}
	}
	level := c.LogLevel()
	if logLevel != "" {
		var err error
		if level, err = logrus.ParseLevel(strings.ToLower(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	logger.SetLevel(level)
	if level >= logrus.DebugLevel {
		gesture.SetLogger(logger)
	} else {
		gesture.SetLogger(nil)
	}
	cfg = c
	return nil
}
