//go:build windows

package browser

import (
	"os/exec"
	"syscall"
)

// errAddrInUse is the listen error for a port that is already bound.
var errAddrInUse error = syscall.Errno(10048) // WSAEADDRINUSE

// configureProcess detaches the browser into its own process group so a
// console Ctrl+C is not delivered to it directly.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
}
