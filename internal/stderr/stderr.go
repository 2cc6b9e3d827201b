//go:build !windows

// Package stderr captures output that C libraries (the ALSA backend under
// the speaker) write straight to file descriptor 2, so it lands in the log
// file instead of on top of the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
)

// Capture redirects fd 2 into the logger until Stop is called.
type Capture struct {
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	done       chan struct{}
}

// Start begins capturing stderr output.
// Must be called early in main(), before the speaker is initialized.
// On error the program can continue without capture.
func Start(logger *log.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		origStderr: orig,
		pipeRead:   r,
		pipeWrite:  w,
		done:       make(chan struct{}),
	}

	go func() {
		defer close(c.done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				logger.Warn("stderr", "line", line)
			}
		}
	}()

	return c, nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must stay visible.
func (c *Capture) WriteOriginal(msg string) {
	if c == nil {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(c.origStderr, []byte(msg))
}

// Stop restores the original stderr and waits for buffered lines to be
// logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}

	_ = syscall.Dup2(c.origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(c.origStderr)

	// Closing the last write end ends the reader with EOF.
	c.pipeWrite.Close()
	<-c.done
	c.pipeRead.Close()
}
