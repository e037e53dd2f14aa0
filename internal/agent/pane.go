package agent

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	xpty "github.com/charmbracelet/x/xpty"
)

// maxRingLines bounds how much output a pane retains.
const maxRingLines = 2000

// Pane is one running process attached to a PTY: a coding agent, a
// shell, or any other CLI. Output is kept as a bounded line ring for
// rendering; input and resizes are forwarded to the PTY.
type Pane struct {
	ID    string
	Title string

	pty    xpty.Pty
	cmd    *exec.Cmd
	cancel context.CancelFunc

	mu      sync.Mutex
	lines   []string
	partial string
	exited  bool

	width, height int
}

// NewPane starts a process on a fresh PTY of the given size. The pane id
// is written to exitChan when the process terminates.
func NewPane(id string, a Agent, width, height int, exitChan chan<- string) (*Pane, error) {
	width = max(width, 1)
	height = max(height, 1)

	pty, err := xpty.NewPty(width, height)
	if err != nil {
		return nil, fmt.Errorf("create pty: %w", err)
	}

	// #nosec G204 - the command comes from the agent registry, which the
	// user configures deliberately.
	cmd := exec.Command(a.Command, a.Args...)
	cmd.Env = append(os.Environ(), a.Env...)
	cmd.Env = append(cmd.Env, "GRIDOS_PANE_ID="+id)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := pty.Start(cmd); err != nil {
		_ = pty.Close()
		return nil, fmt.Errorf("start %s: %w", a.Command, err)
	}
	// Some PTY implementations only accept a resize once the process is
	// attached.
	_ = pty.Resize(width, height)

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pane{
		ID:     id,
		Title:  a.Name,
		pty:    pty,
		cmd:    cmd,
		cancel: cancel,
		width:  width,
		height: height,
	}

	go p.readLoop(ctx)
	go func() {
		_ = xpty.WaitProcess(ctx, cmd)
		p.mu.Lock()
		p.exited = true
		p.mu.Unlock()
		cancel()
		select {
		case exitChan <- id:
		default:
		}
	}()

	return p, nil
}

func (p *Pane) readLoop(ctx context.Context) {
	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		n, err := p.pty.Read(buf)
		if n > 0 {
			p.append(string(buf[:n]))
		}
		if err != nil {
			return
		}
	}
}

// append folds a raw output chunk into the line ring.
func (p *Pane) append(chunk string) {
	text := stripANSI(chunk)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	p.mu.Lock()
	defer p.mu.Unlock()
	parts := strings.Split(p.partial+text, "\n")
	p.partial = parts[len(parts)-1]
	p.lines = append(p.lines, parts[:len(parts)-1]...)
	if over := len(p.lines) - maxRingLines; over > 0 {
		p.lines = p.lines[over:]
	}
}

// Tail returns the last n output lines plus any unterminated partial
// line.
func (p *Pane) Tail(n int) []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	lines := p.lines
	if p.partial != "" {
		lines = append(lines[:len(lines):len(lines)], p.partial)
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return append([]string(nil), lines...)
}

// Write forwards input bytes to the process.
func (p *Pane) Write(data []byte) error {
	p.mu.Lock()
	pty, exited := p.pty, p.exited
	p.mu.Unlock()
	if exited || pty == nil {
		return fmt.Errorf("pane %s: process has exited", p.ID)
	}
	if len(data) == 0 {
		return nil
	}
	if _, err := pty.Write(data); err != nil {
		return fmt.Errorf("pane %s: write: %w", p.ID, err)
	}
	return nil
}

// Resize changes the PTY size. Callers gate this through the flap guard.
func (p *Pane) Resize(width, height int) error {
	width = max(width, 1)
	height = max(height, 1)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pty == nil {
		return nil
	}
	if p.width == width && p.height == height {
		return nil
	}
	p.width = width
	p.height = height
	return p.pty.Resize(width, height)
}

// Size returns the current PTY size.
func (p *Pane) Size() (width, height int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

// Running reports whether the process is still alive.
func (p *Pane) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.exited
}

// Close tears the pane down: cancels I/O, closes the PTY and kills the
// process if it has not exited on its own.
func (p *Pane) Close() {
	if p == nil {
		return
	}
	if p.cancel != nil {
		p.cancel()
	}

	p.mu.Lock()
	pty := p.pty
	p.pty = nil
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if pty != nil {
		_ = pty.Close()
	}
	if cmd != nil && cmd.Process != nil {
		done := make(chan struct{})
		go func() {
			_ = cmd.Process.Kill()
			_, _ = cmd.Process.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
		}
	}
}

// stripANSI removes CSI and OSC escape sequences so ring lines hold
// plain text.
func stripANSI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != 0x1b {
			if c == '\t' || c == '\n' || c == '\r' || c >= 0x20 {
				b.WriteByte(c)
			}
			continue
		}
		if i+1 >= len(s) {
			break
		}
		switch s[i+1] {
		case '[':
			// CSI: parameters then a final byte in 0x40..0x7e.
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
		case ']':
			// OSC: terminated by BEL or ST.
			j := i + 2
			for j < len(s) {
				if s[j] == 0x07 {
					break
				}
				if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
					j++
					break
				}
				j++
			}
			i = j
		default:
			// Two-byte escape.
			i++
		}
	}
	return b.String()
}
