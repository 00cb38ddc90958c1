package browser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// process is a browser started outside Playwright's control.
type process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// buildArgs assembles the command line for a debuggable, unthrottled window.
func buildArgs(s Settings) []string {
	args := []string{
		fmt.Sprintf("--remote-debugging-port=%d", s.Port),
		"--remote-debugging-address=" + debugHost,
		"--no-first-run",
		"--no-default-browser-check",
		"--new-window",
		"--start-maximized",
	}
	args = append(args, throttlingFlags...)
	if s.UserDataDir != "" {
		args = append(args, "--user-data-dir="+s.UserDataDir)
	}
	args = append(args, s.ExtraArgs...)
	return append(args, s.StartURL)
}

func startProcess(path string, args []string, output io.Writer) (*process, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdout = output
	cmd.Stderr = output
	configureProcess(cmd)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", path, err)
	}

	p := &process{cmd: cmd, done: make(chan struct{})}
	go func() {
		p.err = cmd.Wait()
		close(p.done)
	}()
	return p, nil
}

// PID returns the operating system process id.
func (p *process) PID() int {
	if p == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Exited reports whether the process has terminated.
func (p *process) Exited() bool {
	if p == nil {
		return true
	}
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Terminate asks the process to exit and kills it after grace.
func (p *process) Terminate(grace time.Duration) error {
	if p.Exited() {
		return nil
	}

	if err := p.cmd.Process.Signal(os.Interrupt); err != nil {
		// Windows has no interrupt for other processes.
		return p.kill()
	}

	select {
	case <-p.done:
		return nil
	case <-time.After(grace):
		return p.kill()
	}
}

func (p *process) kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !p.Exited() {
		return fmt.Errorf("failed to kill browser process %d: %w", p.PID(), err)
	}
	<-p.done
	return nil
}
