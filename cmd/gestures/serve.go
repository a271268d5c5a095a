// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gioui.org/x/multitouch/internal/wsserve"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Recognize gestures of WebSocket clients",
	Long: `Serve accepts WebSocket connections on /ws. Every connection gets its
own recognizers; clients send pointer events as JSON and receive the
notifications as JSON.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return wsserve.New(cfg, logger).ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address, overrides the configuration")
	rootCmd.AddCommand(serveCmd)
}
