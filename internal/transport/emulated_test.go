package transport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennjii/labjack/internal/modbus"
)

func TestEmulated_WriteReadInvariance(t *testing.T) {
	e := NewEmulated()
	reg := modbus.Register{Address: 0x07D0, DataType: modbus.U16}

	require.NoError(t, e.WriteRegister(context.Background(), reg, modbus.ValueU16(42)))

	got, err := e.ReadRegister(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, modbus.U16, got.Type())
	assert.Equal(t, uint16(42), got.AsU16())
}

func TestEmulated_ReadBeforeWriteReturnsFloating(t *testing.T) {
	e := NewEmulated()
	reg := modbus.Register{Address: 0x0010, DataType: modbus.F32}

	got, err := e.ReadRegister(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, modbus.Floating(modbus.F32), got)
}

func TestEmulated_WriteTypeMismatchFails(t *testing.T) {
	e := NewEmulated()
	reg := modbus.Register{Address: 0x0010, DataType: modbus.F32}

	err := e.WriteRegister(context.Background(), reg, modbus.ValueU16(1))
	require.Error(t, err)
	var merr *modbus.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, modbus.KindInvalidData, merr.Kind)
}

func TestEmulated_Feedback(t *testing.T) {
	e := NewEmulated()
	ain := modbus.Register{Address: 0x6E, DataType: modbus.F32}
	dac := modbus.Register{Address: 0x03E8, DataType: modbus.F32}

	values, err := e.Feedback(context.Background(), modbus.FeedbackReq{
		Frames: []modbus.FeedbackFrame{
			modbus.WriteFrame(dac, modbus.ValueF32(3.3)),
			modbus.ReadFrame(ain),
		},
	})
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, modbus.Floating(modbus.F32), values[0])

	got, err := e.ReadRegister(context.Background(), dac)
	require.NoError(t, err)
	assert.Equal(t, float32(3.3), got.AsF32())
}
