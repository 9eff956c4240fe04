// Package labjack is a client library for LabJack T-series data
// acquisition devices over Modbus TCP: network discovery via UDP broadcast,
// strongly-typed named-register read/write, and an emulated in-process
// transport for tests.
package labjack

import (
	"net"
	"time"

	"github.com/GoAethereal/cancel"
	"go.uber.org/zap"

	"github.com/bennjii/labjack/internal/discovery"
	"github.com/bennjii/labjack/internal/modbus"
	"github.com/bennjii/labjack/internal/transport"
)

// DiscoverOptions configures a Discover/Connect call.
type DiscoverOptions struct {
	// Timeout bounds the discovery broadcast window. Zero selects
	// discovery.DefaultTimeout.
	Timeout time.Duration
	// DialTimeout bounds the TCP connect Connect performs once discovery
	// has found the requested serial. Zero defers entirely to ctx.
	DialTimeout time.Duration
	Logger      *zap.Logger
}

// Discover broadcasts one discovery request and returns every device that
// answered before the discovery window elapsed.
func Discover(ctx cancel.Context, opts DiscoverOptions) ([]LabJackDevice, error) {
	it, err := discovery.Discover(ctx, discovery.Options{Timeout: opts.Timeout, Logger: opts.Logger})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var devices []LabJackDevice
	for {
		r, ok, err := it.Next()
		if err != nil {
			return devices, err
		}
		if !ok {
			return devices, nil
		}
		devices = append(devices, LabJackDevice{
			DeviceType:     deviceTypeFromProductIDBits(r.ProductIDBits()),
			ConnectionType: ConnectionEthernet,
			IPAddress:      r.IPAddress,
			SerialNumber:   r.SerialNumber,
			Port:           r.Port,
		})
	}
}

// Connect discovers devices and dials a TCP connection to the one matching
// serial. serial == EmulatedSerialNumber connects the in-process emulated
// transport with no network I/O.
func Connect(ctx cancel.Context, serial int32, opts DiscoverOptions) (*Client, error) {
	if serial == EmulatedSerialNumber {
		return ConnectEmulated(), nil
	}

	devices, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.SerialNumber == serial {
			return dialTCP(ctx, d, opts)
		}
	}
	return nil, modbus.ErrDeviceNotFound()
}

func dialTCP(ctx cancel.Context, device LabJackDevice, opts DiscoverOptions) (*Client, error) {
	// device.Port is the UDP discovery responder's ephemeral source port,
	// not the Modbus TCP port; Modbus TCP always listens on 502, so Config
	// is left to default to transport.DefaultPort in Endpoint below.
	cfg := modbus.Config{Address: device.IPAddress.String(), DialTimeout: opts.DialTimeout}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	t, err := transport.DialWithOptions(ctx, cfg.Endpoint(transport.DefaultPort), transport.DialOptions{
		DialTimeout: opts.DialTimeout,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	return newClient(device, t), nil
}

// ConnectWith wraps an already-constructed Transport (a live TCP connection
// dialed outside the discovery flow, or a test double) into a Client for
// the given device. This is the seam Emulated and transport-level tests use
// directly.
func ConnectWith(device LabJackDevice, t transport.Transport) *Client {
	return newClient(device, t)
}

// ConnectEmulated returns a Client backed by the in-process Emulated
// transport and the canonical emulated device descriptor.
func ConnectEmulated() *Client {
	device := LabJackDevice{
		DeviceType:     DeviceEmulated(EmulatedSerialNumber),
		ConnectionType: ConnectionAny,
		IPAddress:      net.IPv4(127, 0, 0, 1),
		SerialNumber:   EmulatedSerialNumber,
		Port:           transport.DefaultPort,
	}
	return newClient(device, transport.NewEmulated())
}
