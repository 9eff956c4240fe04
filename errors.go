package labjack

import "github.com/bennjii/labjack/internal/modbus"

// Error is the single error type this module returns; see Kind for the
// taxonomy. It is a type alias for the core engine's error so callers never
// need to reach into the internal package to spell the type or compare
// against a sentinel.
type Error = modbus.Error

// Kind discriminates the error taxonomy: protocol validation failures,
// encoding errors, transport/IO failures, discovery misses and queue
// (transaction-id demultiplexer) failures.
type Kind = modbus.Kind

const (
	KindException       = modbus.KindException
	KindIO              = modbus.KindIO
	KindInvalidResponse = modbus.KindInvalidResponse
	KindInvalidData     = modbus.KindInvalidData
	KindInvalidFunction = modbus.KindInvalidFunction
	KindDeviceNotFound  = modbus.KindDeviceNotFound
	KindQueue           = modbus.KindQueue
)

// ExceptionCode is a Modbus exception code returned by a device.
type ExceptionCode = modbus.ExceptionCode

// Sentinel errors for errors.Is comparisons.
var (
	ErrDeviceNotFound  = modbus.ErrDeviceNotFoundSentinel
	ErrInvalidResponse = modbus.ErrInvalidResponseSentinel
	ErrInvalidFunction = modbus.ErrInvalidFunctionSentinel
)
