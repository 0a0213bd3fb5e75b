package transport

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTimeoutError struct{}

func (fakeTimeoutError) Error() string   { return "i/o timeout" }
func (fakeTimeoutError) Timeout() bool   { return true }
func (fakeTimeoutError) Temporary() bool { return true }

func TestWrapNetErrorClassifiesTimeout(t *testing.T) {
	var nerr net.Error = fakeTimeoutError{}
	err := wrapNetError("udp read", nerr)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWrapNetErrorClassifiesConnect(t *testing.T) {
	err := wrapNetError("dial tcp", errors.New("connection refused"))
	assert.ErrorIs(t, err, ErrConnect)
}

func TestWrapNetErrorNil(t *testing.T) {
	assert.NoError(t, wrapNetError("udp read", nil))
}
