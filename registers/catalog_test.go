package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bennjii/labjack/internal/modbus"
)

func TestLookup_ResolvesEveryName(t *testing.T) {
	for n := NameProductID; n <= NameTestUint32; n++ {
		reg, ok := Lookup(n)
		require.Truef(t, ok, "Name %v (%q) has no catalog entry", n, n)
		assert.NotEqual(t, modbus.DataType(0xFF), reg.DataType)
	}
}

func TestLookup_UnknownNameFails(t *testing.T) {
	_, ok := Lookup(Name(-1))
	assert.False(t, ok)
}

func TestLookup_MatchesGeneratedRegister(t *testing.T) {
	reg, ok := Lookup(NameFIO0)
	require.True(t, ok)
	assert.Equal(t, FIO0.Register(), reg)
}

func TestName_StringRoundTrip(t *testing.T) {
	assert.Equal(t, "PRODUCT_ID", NameProductID.String())
	assert.Equal(t, "AIN55", NameAIN55.String())
	assert.Equal(t, "Unknown", Name(-1).String())
}

func TestProductIDRegister_MatchesDiscoveryContract(t *testing.T) {
	reg, ok := Lookup(NameProductID)
	require.True(t, ok)
	assert.Equal(t, uint16(60000), reg.Address)
	assert.Equal(t, modbus.F32, reg.DataType)
}
