// Package watch re-runs an action when the files of a release directory change.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/agentstation/repurpose/pkg/constants"
	"github.com/agentstation/repurpose/pkg/errors"
	"github.com/agentstation/repurpose/pkg/logging"
)

// Func is called once per debounced burst of changes.
type Func func(ctx context.Context, changed []string) error

// Option configures Run.
type Option func(*options)

type options struct {
	debounce time.Duration
	logger   *zerolog.Logger
}

// WithDebounce sets how long Run waits for a burst of events to settle.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithLogger sets the logger for watch events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Run watches dir and calls fn after any of files is written, created,
// renamed or removed. Events for other files are ignored. Run blocks until
// ctx is done and returns nil, or returns the first watcher error. Errors
// returned by fn are logged and do not stop the watch.
func Run(ctx context.Context, dir string, files []string, fn Func, opts ...Option) error {
	o := &options{debounce: constants.WatchDebounce, logger: logging.Default()}
	for _, opt := range opts {
		opt(o)
	}

	watched := make(map[string]struct{}, len(files))
	for _, f := range files {
		watched[filepath.Base(f)] = struct{}{}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WrapIO("watch", dir, err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return errors.WrapIO("watch", dir, err)
	}
	o.logger.Info().Str("dir", dir).Strs("files", files).Msg("watching release files")

	var (
		timer   *time.Timer
		fire    = make(chan struct{}, 1)
		pending = make(map[string]struct{})
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if _, ok := watched[name]; !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			o.logger.Debug().Str("file", name).Str("op", event.Op.String()).Msg("release file changed")
			pending[name] = struct{}{}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(o.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			// A timer stopped after firing still leaves its signal behind.
			changed := drain(pending)
			if len(changed) == 0 {
				continue
			}
			if err := fn(ctx, changed); err != nil {
				o.logger.Warn().Err(err).Msg("watch action failed")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.WrapIO("watch", dir, err)
		}
	}
}

// drain returns the pending names in order and empties the set.
func drain(pending map[string]struct{}) []string {
	if len(pending) == 0 {
		return nil
	}
	changed := make([]string, 0, len(pending))
	for name := range pending {
		changed = append(changed, name)
	}
	clear(pending)
	slices.Sort(changed)
	return changed
}
