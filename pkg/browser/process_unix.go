//go:build unix

package browser

import (
	"os/exec"
	"syscall"
)

// errAddrInUse is the listen error for a port that is already bound.
var errAddrInUse error = syscall.EADDRINUSE

// configureProcess detaches the browser into its own process group so a
// terminal Ctrl+C is not delivered to it directly.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
