// FILE: idevlog/src/internal/deviceinfo/info.go
package deviceinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"idevlog/src/internal/device"

	"github.com/lixenwraith/log"
)

var ErrKeyNotFound = errors.New("key not found")

// Info answers property queries for a single device
type Info struct {
	udid   string
	source PropertySource
	logger *log.Logger
}

// New binds source to the single device of target. Group targets are rejected.
func New(target device.Target, source PropertySource, logger *log.Logger) (*Info, error) {
	conn, err := target.Connection()
	if err != nil {
		return nil, err
	}
	return &Info{
		udid:   conn.UDID(),
		source: source,
		logger: logger,
	}, nil
}

func (i *Info) UDID() string {
	return i.udid
}

// GetValues returns the properties of domain with double quotes removed
func (i *Info) GetValues(ctx context.Context, domain Domain) (map[string]string, error) {
	raw, err := i.source.Values(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("domain %s: %w", domain, err)
	}

	values := make(map[string]string, len(raw))
	for k, v := range raw {
		values[k] = strings.ReplaceAll(v, `"`, "")
	}
	return values, nil
}

func (i *Info) GetValue(ctx context.Context, key string, domain Domain) (string, error) {
	values, err := i.GetValues(ctx, domain)
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return v, nil
}

func (i *Info) GetAllValues(ctx context.Context) (map[string]string, error) {
	return i.GetValues(ctx, All)
}

func (i *Info) ProductType(ctx context.Context) (string, error) {
	return i.GetValue(ctx, KeyProductType, All)
}

func (i *Info) ProductVersion(ctx context.Context) (string, error) {
	return i.GetValue(ctx, KeyProductVersion, All)
}
