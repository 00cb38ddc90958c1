package browser

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPortFree(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	err = CheckPortFree(port)
	assert.ErrorIs(t, err, ErrPortInUse)

	require.NoError(t, ln.Close())
	assert.NoError(t, CheckPortFree(port))
}

func TestCheckPortFree_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 65536} {
		err := CheckPortFree(port)
		assert.ErrorIs(t, err, ErrInvalidPort, "port %d", port)
		assert.NotErrorIs(t, err, ErrPortInUse, "port %d", port)
	}
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:9223", endpointURL(9223))
}
