// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch calls onChange with the path of every watched file that is
// written or recreated, until ctx is done. Calls are made from the
// goroutine running Watch.
func Watch(ctx context.Context, log logrus.FieldLogger, onChange func(path string), paths ...string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			switch {
			// Reload on write or create (some editors do atomic saves via rename)
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				onChange(event.Name)
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				// The file was replaced; watch the new one.
				if err := w.Add(event.Name); err == nil {
					onChange(event.Name)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watcher error")
		}
	}
}
