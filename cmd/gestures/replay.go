// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"gioui.org/x/multitouch/internal/config"
	"gioui.org/x/multitouch/internal/script"
	"gioui.org/x/multitouch/internal/surface"
)

var (
	watch     bool
	showState bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a script of pointer events",
	Long: `Replay runs the pointer events of a YAML script through the
recognizers and prints every notification as a JSON line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if err := replay(out, args[0]); err != nil {
			return err
		}
		if !watch {
			return nil
		}
		return watchReplay(cmd.Context(), out, args[0])
	},
}

func init() {
	replayCmd.Flags().BoolVarP(&watch, "watch", "w", false, "replay again when the script or configuration changes")
	replayCmd.Flags().BoolVar(&showState, "state", false, "print the final surface state")
	rootCmd.AddCommand(replayCmd)
}

func replay(w io.Writer, path string) error {
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	s := surface.New(cfg, logger)
	defer s.Close()
	recs, err := s.Play(sc)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	for _, r := range recs {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	if showState {
		if err := enc.Encode(s.State()); err != nil {
			return fmt.Errorf("failed to write state: %w", err)
		}
	}
	return nil
}

func watchReplay(ctx context.Context, w io.Writer, path string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	paths := []string{path}
	if cfgPath != "" {
		paths = append(paths, cfgPath)
	}
	logger.WithField("paths", paths).Info("watching for changes")
	err := config.Watch(ctx, logger, func(changed string) {
		if changed == cfgPath {
			c, err := config.Load(cfgPath)
			if err != nil {
				logger.WithError(err).Error("failed to reload config")
				return
			}
			cfg = c
			logger.Info("config reloaded")
		}
		if err := replay(w, path); err != nil {
			logger.WithError(err).Error("replay failed")
		}
	}, paths...)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
