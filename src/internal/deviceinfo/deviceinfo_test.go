// FILE: idevlog/src/internal/deviceinfo/deviceinfo_test.go
package deviceinfo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"idevlog/src/internal/device"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

type staticConn struct{ udid string }

func (c staticConn) UDID() string { return c.udid }

func (c staticConn) Lockdown() (device.Lockdown, error) {
	return nil, errors.New("not used")
}

type mapSource struct {
	domains map[Domain]map[string]string
	err     error
}

func (s mapSource) Values(_ context.Context, domain Domain) (map[string]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.domains[domain], nil
}

func newTestInfo(t *testing.T, src PropertySource) *Info {
	t.Helper()
	info, err := New(device.Single(staticConn{udid: "abc"}), src, newTestLogger())
	require.NoError(t, err)
	return info
}

func TestInfo(t *testing.T) {
	ctx := context.Background()
	src := mapSource{domains: map[Domain]map[string]string{
		All: {
			KeyProductType:    "iPhone14,2",
			KeyProductVersion: `"17.4.1"`,
			KeyDeviceName:     `"Bob's" phone`,
		},
		Battery: {
			"BatteryCurrentCapacity": "81",
		},
	}}
	info := newTestInfo(t, src)

	t.Run("GroupRejected", func(t *testing.T) {
		_, err := New(device.Group(staticConn{}, staticConn{}), src, newTestLogger())
		assert.ErrorIs(t, err, device.ErrGroupUnsupported)
	})

	t.Run("QuotesStripped", func(t *testing.T) {
		values, err := info.GetAllValues(ctx)
		require.NoError(t, err)
		assert.Equal(t, "17.4.1", values[KeyProductVersion])
		assert.Equal(t, "Bob's phone", values[KeyDeviceName])
	})

	t.Run("ProductTypeAndVersion", func(t *testing.T) {
		productType, err := info.ProductType(ctx)
		require.NoError(t, err)
		assert.Equal(t, "iPhone14,2", productType)

		version, err := info.ProductVersion(ctx)
		require.NoError(t, err)
		assert.Equal(t, "17.4.1", version)
	})

	t.Run("DomainValue", func(t *testing.T) {
		v, err := info.GetValue(ctx, "BatteryCurrentCapacity", Battery)
		require.NoError(t, err)
		assert.Equal(t, "81", v)
	})

	t.Run("MissingKey", func(t *testing.T) {
		_, err := info.GetValue(ctx, KeySerialNumber, All)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("SourceError", func(t *testing.T) {
		failing := newTestInfo(t, mapSource{err: errors.New("no device")})
		_, err := failing.ProductType(ctx)
		assert.ErrorContains(t, err, "no device")
	})
}

func TestExecSource(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("ParsesOutput", func(t *testing.T) {
		script := `printf 'ProductType: iPhone14,2\nProductVersion: 17.4\nProximitySensorCalibration:\n  nested: skipped\nnot a property\n'`
		src := NewExecSource("", []string{"sh", "-c", script}, logger)

		values, err := src.Values(ctx, All)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"ProductType":                "iPhone14,2",
			"ProductVersion":             "17.4",
			"ProximitySensorCalibration": "",
		}, values)
	})

	t.Run("PassesUDIDAndDomain", func(t *testing.T) {
		// sh -c binds the trailing arguments to $0, $1, ...
		src := NewExecSource("abc", []string{"sh", "-c", `echo "Args: $0 $1 $2 $3"`}, logger)

		values, err := src.Values(ctx, Battery)
		require.NoError(t, err)
		assert.Equal(t, "-u abc -q com.apple.mobile.battery", values["Args"])
	})

	t.Run("CommandFailure", func(t *testing.T) {
		src := NewExecSource("", []string{"sh", "-c", "echo 'No device found' >&2; exit 1"}, logger)
		_, err := src.Values(ctx, All)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No device found")
	})
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("battery")
	require.NoError(t, err)
	assert.Equal(t, Battery, d)

	d, err = ParseDomain("com.apple.disk_usage")
	require.NoError(t, err)
	assert.Equal(t, DiskUsage, d)

	d, err = ParseDomain("")
	require.NoError(t, err)
	assert.Equal(t, All, d)
	assert.Equal(t, "all", d.String())

	_, err = ParseDomain("com.example.nope")
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	values := map[string]string{
		"ProductVersion": "17.4",
		"DeviceName":     "phone",
	}

	t.Run("Text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, values, "text"))
		out := buf.String()
		assert.Contains(t, out, "phone\n")
		assert.Contains(t, out, "17.4\n")
		assert.Less(t, strings.Index(out, "DeviceName"), strings.Index(out, "ProductVersion"))
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, values, "yaml"))
		var got map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, values, got)
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, values, "json"))
		var got map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, values, got)
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Error(t, Render(&bytes.Buffer{}, values, "xml"))
	})
}
