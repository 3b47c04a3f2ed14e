package player

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/tessro/heimdall/internal/logging"
)

// Audio is an audio output.
type Audio interface {
	// Load sets the source URL, stopping anything already playing.
	Load(url string) error
	Play() error
	Stop() error
	// Ended fires when a track finishes on its own.
	Ended() <-chan struct{}
	// Failed fires when playback stops on its own with an error.
	Failed() <-chan error
}

// Default external player.
var (
	DefaultCommand = "mpv"
	DefaultArgs    = []string{"--no-video", "--really-quiet"}
)

// ExecAudio plays streams by running an external player process with the
// stream URL as its last argument.
type ExecAudio struct {
	command string
	args    []string
	logger  *log.Logger

	mu     sync.Mutex
	url    string
	cmd    *exec.Cmd
	ended  chan struct{}
	failed chan error
}

// NewExecAudio creates an audio output that runs command with args.
func NewExecAudio(command string, args []string, logger *log.Logger) *ExecAudio {
	if command == "" {
		command = DefaultCommand
		args = DefaultArgs
	}
	return &ExecAudio{
		command: command,
		args:    args,
		logger:  logging.With(logger, "component", "audio"),
		ended:   make(chan struct{}, 1),
		failed:  make(chan error, 1),
	}
}

// Available reports whether the player command can be found.
func (a *ExecAudio) Available() bool {
	_, err := exec.LookPath(a.command)
	return err == nil
}

// Load implements Audio.
func (a *ExecAudio) Load(url string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.stopLocked()
	a.url = url

	// Signals from the previous process no longer apply.
	select {
	case <-a.ended:
	default:
	}
	select {
	case <-a.failed:
	default:
	}
	return err
}

// Play implements Audio.
func (a *ExecAudio) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.url == "" {
		return fmt.Errorf("no stream loaded")
	}
	if a.cmd != nil {
		return nil
	}

	args := append(append([]string(nil), a.args...), a.url)
	cmd := exec.Command(a.command, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", a.command, err)
	}
	a.cmd = cmd
	a.logger.Debug("started player", "pid", cmd.Process.Pid)

	go a.wait(cmd)
	return nil
}

func (a *ExecAudio) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Stopped processes are cleared before they exit.
	if a.cmd != cmd {
		return
	}
	a.cmd = nil
	if err != nil {
		a.logger.Warn("player exited", "err", err)
		select {
		case a.failed <- fmt.Errorf("%s: %w", a.command, err):
		default:
		}
		return
	}
	select {
	case a.ended <- struct{}{}:
	default:
	}
}

// Stop implements Audio.
func (a *ExecAudio) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stopLocked()
}

func (a *ExecAudio) stopLocked() error {
	if a.cmd == nil {
		return nil
	}
	cmd := a.cmd
	a.cmd = nil
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to stop player: %w", err)
	}
	return nil
}

// Ended implements Audio.
func (a *ExecAudio) Ended() <-chan struct{} {
	return a.ended
}

// Failed implements Audio.
func (a *ExecAudio) Failed() <-chan error {
	return a.failed
}

var _ Audio = (*ExecAudio)(nil)
