package modbus

import (
	"fmt"
	"net"
	"time"
)

// Config configures a dial to a LabJack device over Modbus TCP. Adapted
// from the teacher's Config/Options Mode/Kind/Endpoint shape, narrowed to
// the one mode (Modbus TCP) and one kind (TCP socket) this module supports;
// Mode/Kind stop being meaningful the moment RTU/ASCII and serial/UDP are
// non-goals, so Verify checks the fields that remain instead.
type Config struct {
	// Address is the device's IP address or hostname.
	Address string
	// Port is the Modbus TCP port. Zero selects transport.DefaultPort (502).
	Port uint16
	// UnitID is the Modbus slave/unit identifier. LabJack firmware only
	// answers unit id 1; Verify accepts 0 (unset) or 1 and rejects anything
	// else (spec §9 Non-goals: no multi-bridge unit_id routing).
	UnitID byte
	// DialTimeout bounds the initial TCP connect. Zero means no deadline
	// beyond whatever the caller's context imposes.
	DialTimeout time.Duration
}

// Verify validates the Config, returning a *Error of Kind InvalidData if any
// field violates a restriction this module imposes.
func (cfg Config) Verify() error {
	if cfg.Address == "" {
		return ErrInvalidData(ReasonEncodingError)
	}
	if cfg.UnitID != 0 && cfg.UnitID != baseUnitID {
		return ErrInvalidData(ReasonEncodingError)
	}
	return nil
}

// Endpoint formats Address:Port as a net.Dial target.
func (cfg Config) Endpoint(defaultPort uint16) string {
	port := cfg.Port
	if port == 0 {
		port = defaultPort
	}
	return net.JoinHostPort(cfg.Address, fmt.Sprint(port))
}
