// FILE: idevlog/src/internal/device/device.go
package device

import (
	"errors"
)

var (
	ErrGroupUnsupported = errors.New("device groups are not supported")
	ErrNoDevice         = errors.New("no device connection")
	ErrUnknownService   = errors.New("unknown device service")
)

// Service is an open device service channel yielding raw byte frames
type Service interface {
	// Receive blocks until at least one byte is available and returns up to maxBytes
	Receive(maxBytes int) ([]byte, error)

	// Close releases the channel
	Close() error
}

// Lockdown starts named services on a connected device
type Lockdown interface {
	StartService(name string) (Service, error)
}

// Connection is a handshaken link to one device
type Connection interface {
	UDID() string
	Lockdown() (Lockdown, error)
}

// Target is either a single device or a group of devices
type Target struct {
	conns []Connection
	group bool
}

func Single(conn Connection) Target {
	return Target{conns: []Connection{conn}}
}

func Group(conns ...Connection) Target {
	return Target{conns: conns, group: true}
}

func (t Target) IsGroup() bool {
	return t.group
}

// Connection returns the single device connection of t
func (t Target) Connection() (Connection, error) {
	if t.IsGroup() {
		return nil, ErrGroupUnsupported
	}
	if len(t.conns) == 0 || t.conns[0] == nil {
		return nil, ErrNoDevice
	}
	return t.conns[0], nil
}
