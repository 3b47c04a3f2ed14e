package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tessro/heimdall/internal/api"
	"github.com/tessro/heimdall/internal/config"
	herrors "github.com/tessro/heimdall/internal/errors"
	"github.com/tessro/heimdall/internal/logging"
	"github.com/tessro/heimdall/internal/lyrics"
	"github.com/tessro/heimdall/internal/notify"
	"github.com/tessro/heimdall/internal/player"
	"github.com/tessro/heimdall/internal/queue"
	"github.com/tessro/heimdall/internal/store"
)

// env holds the collaborators a command needs. Commands build one with
// openEnv and close it when done.
type env struct {
	client   *api.Client
	kv       store.KV
	queue    *store.QueueStore
	profiles *store.ProfileStore
	sessions *store.SessionStore
	notices  *notify.Center

	closer io.Closer
}

func openEnv() (*env, error) {
	dataDir, err := config.DataDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	kv, closer, err := store.Open(cfg.Storage, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client, err := api.New(api.Options{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.TimeoutDuration(),
		RateLimit: cfg.API.RateLimit,
		Logger:    logger,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	rt := &env{
		client:   client,
		kv:       kv,
		queue:    store.NewQueueStore(kv, logger),
		profiles: store.NewProfileStore(kv),
		sessions: store.NewSessionStore(kv),
		notices:  notify.NewCenter(cfg.TUI.ToastDurationValue()),
		closer:   closer,
	}
	rt.restoreSession()
	return rt, nil
}

// restoreSession loads saved cookies for the configured backend.
func (r *env) restoreSession() {
	sess, err := r.sessions.Load()
	if err != nil {
		logging.With(logger, "component", "session").Warn("failed to load session", "err", err)
		return
	}
	if sess == nil || sess.IsExpired() || sess.BaseURL != r.client.BaseURL() {
		return
	}
	r.client.SetCookies(sess.HTTPCookies())
}

func (r *env) Close() {
	r.notices.Close()
	if r.closer != nil {
		_ = r.closer.Close()
	}
}

// newQueue returns a queue manager restored from storage.
func (r *env) newQueue(opts ...queue.Option) *queue.Manager {
	opts = append([]queue.Option{
		queue.WithNotifier(r.notices),
		queue.WithLogger(logger),
	}, opts...)
	m := queue.New(r.queue, opts...)
	m.Restore()
	return m
}

// newController wires a playback controller to m using the configured
// audio command.
func (r *env) newController(m *queue.Manager, view player.View) (*player.Controller, error) {
	audio := player.NewExecAudio(cfg.Player.Command, cfg.Player.Args, logger)
	if !audio.Available() {
		return nil, herrors.WithSuggestion(
			fmt.Errorf("audio player %q not found", cfg.Player.Command),
			"Install mpv or set player.command in ~/.heimdallrc",
		)
	}
	return player.NewController(m, r.client, audio, player.Options{
		ErrorHold: cfg.Player.ErrorHoldDuration(),
		View:      view,
		Logger:    logger,
	}), nil
}

func (r *env) newLyrics() *lyrics.Fetcher {
	return lyrics.NewFetcher(r.client, logger)
}

// requireLogin turns unauthorized responses into a hint to log in.
func requireLogin(err error) error {
	if errors.Is(err, herrors.ErrUnauthorized) {
		return herrors.WithSuggestion(err, "Run 'heimdall login' to sign in")
	}
	return err
}

// cmdContext returns the command's context, or Background when run
// outside Execute.
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
