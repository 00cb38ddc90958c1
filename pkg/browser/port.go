package browser

import (
	"errors"
	"fmt"
	"net"
	"strconv"
)

// debugHost is the only interface the debugging endpoint binds to.
const debugHost = "127.0.0.1"

// CheckPortFree fails with ErrPortInUse when something already listens on
// the debugging port. A browser left over from an earlier run is never reused.
// Ports outside 1-65535 fail with ErrInvalidPort; other listen errors are
// wrapped as they are.
func CheckPortFree(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, port)
	}
	addr := net.JoinHostPort(debugHost, strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if errors.Is(err, errAddrInUse) {
		return fmt.Errorf("%w: %s: %v", ErrPortInUse, addr, err)
	}
	if err != nil {
		return fmt.Errorf("failed to check debugging port %s: %w", addr, err)
	}
	return ln.Close()
}

// endpointURL is the CDP HTTP endpoint for port.
func endpointURL(port int) string {
	return "http://" + net.JoinHostPort(debugHost, strconv.Itoa(port))
}
