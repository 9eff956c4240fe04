package registers

import "github.com/bennjii/labjack/internal/modbus"

// Register addresses below are taken from LabJack's published Modbus
// register map (AIN channels at address = 2*channel, FIO digital lines
// starting at 2000, DAC channels at 1000/1002); TEST_UINT32 is a fixed test
// register used by the wire-capture scenarios this module is tested
// against.

// PRODUCT_ID reports the device family as an IEEE-754 float (4.0/7.0/8.0).
// Read-only; also used directly by discovery.
var PRODUCT_ID = modbus.NewReadOnlyRegister(modbus.Register{Address: 60000, DataType: modbus.F32})

// SERIAL_NUMBER reports the device's serial number. Read-only.
var SERIAL_NUMBER = modbus.NewReadOnlyRegister(modbus.Register{Address: 60028, DataType: modbus.I32})

// FIO0..FIO7 are the flexible digital I/O lines; each is independently
// readable and writable.
var (
	FIO0 = modbus.NewReadWriteRegister(modbus.Register{Address: 2000, DataType: modbus.U16})
	FIO1 = modbus.NewReadWriteRegister(modbus.Register{Address: 2001, DataType: modbus.U16})
	FIO2 = modbus.NewReadWriteRegister(modbus.Register{Address: 2002, DataType: modbus.U16})
	FIO3 = modbus.NewReadWriteRegister(modbus.Register{Address: 2003, DataType: modbus.U16})
	FIO4 = modbus.NewReadWriteRegister(modbus.Register{Address: 2004, DataType: modbus.U16})
	FIO5 = modbus.NewReadWriteRegister(modbus.Register{Address: 2005, DataType: modbus.U16})
	FIO6 = modbus.NewReadWriteRegister(modbus.Register{Address: 2006, DataType: modbus.U16})
	FIO7 = modbus.NewReadWriteRegister(modbus.Register{Address: 2007, DataType: modbus.U16})
)

// AIN0..AIN13 are the low-numbered analog input channels, each a 32-bit
// float at address 2*channel. Read-only.
var (
	AIN0  = modbus.NewReadOnlyRegister(modbus.Register{Address: 0, DataType: modbus.F32})
	AIN1  = modbus.NewReadOnlyRegister(modbus.Register{Address: 2, DataType: modbus.F32})
	AIN2  = modbus.NewReadOnlyRegister(modbus.Register{Address: 4, DataType: modbus.F32})
	AIN3  = modbus.NewReadOnlyRegister(modbus.Register{Address: 6, DataType: modbus.F32})
	AIN4  = modbus.NewReadOnlyRegister(modbus.Register{Address: 8, DataType: modbus.F32})
	AIN5  = modbus.NewReadOnlyRegister(modbus.Register{Address: 10, DataType: modbus.F32})
	AIN6  = modbus.NewReadOnlyRegister(modbus.Register{Address: 12, DataType: modbus.F32})
	AIN7  = modbus.NewReadOnlyRegister(modbus.Register{Address: 14, DataType: modbus.F32})
	AIN8  = modbus.NewReadOnlyRegister(modbus.Register{Address: 16, DataType: modbus.F32})
	AIN9  = modbus.NewReadOnlyRegister(modbus.Register{Address: 18, DataType: modbus.F32})
	AIN10 = modbus.NewReadOnlyRegister(modbus.Register{Address: 20, DataType: modbus.F32})
	AIN11 = modbus.NewReadOnlyRegister(modbus.Register{Address: 22, DataType: modbus.F32})
	AIN12 = modbus.NewReadOnlyRegister(modbus.Register{Address: 24, DataType: modbus.F32})
	AIN13 = modbus.NewReadOnlyRegister(modbus.Register{Address: 26, DataType: modbus.F32})
)

// AIN48..AIN56 are the extended/high-numbered analog input channels used in
// the Feedback scenario fixtures (AIN55, AIN56). Same address formula,
// same type, read-only.
var (
	AIN48 = modbus.NewReadOnlyRegister(modbus.Register{Address: 96, DataType: modbus.F32})
	AIN49 = modbus.NewReadOnlyRegister(modbus.Register{Address: 98, DataType: modbus.F32})
	AIN50 = modbus.NewReadOnlyRegister(modbus.Register{Address: 100, DataType: modbus.F32})
	AIN51 = modbus.NewReadOnlyRegister(modbus.Register{Address: 102, DataType: modbus.F32})
	AIN52 = modbus.NewReadOnlyRegister(modbus.Register{Address: 104, DataType: modbus.F32})
	AIN53 = modbus.NewReadOnlyRegister(modbus.Register{Address: 106, DataType: modbus.F32})
	AIN54 = modbus.NewReadOnlyRegister(modbus.Register{Address: 108, DataType: modbus.F32})
	AIN55 = modbus.NewReadOnlyRegister(modbus.Register{Address: 110, DataType: modbus.F32})
	AIN56 = modbus.NewReadOnlyRegister(modbus.Register{Address: 112, DataType: modbus.F32})
)

// DAC0/DAC1 are the analog output channels. Write-only: there is no
// firmware-side readback of a commanded DAC value.
var (
	DAC0 = modbus.NewWriteOnlyRegister(modbus.Register{Address: 1000, DataType: modbus.F32})
	DAC1 = modbus.NewWriteOnlyRegister(modbus.Register{Address: 1002, DataType: modbus.F32})
)

// TEST_UINT32 is a fixed scratch register exercised by the U32 wire-capture
// test scenario; read-write.
var TEST_UINT32 = modbus.NewReadWriteRegister(modbus.Register{Address: 0xD750, DataType: modbus.U32})

var byName = map[Name]modbus.Register{
	NameProductID:    PRODUCT_ID.Register(),
	NameSerialNumber: SERIAL_NUMBER.Register(),
	NameFIO0:         FIO0.Register(),
	NameFIO1:         FIO1.Register(),
	NameFIO2:         FIO2.Register(),
	NameFIO3:         FIO3.Register(),
	NameFIO4:         FIO4.Register(),
	NameFIO5:         FIO5.Register(),
	NameFIO6:         FIO6.Register(),
	NameFIO7:         FIO7.Register(),
	NameAIN0:         AIN0.Register(),
	NameAIN1:         AIN1.Register(),
	NameAIN2:         AIN2.Register(),
	NameAIN3:         AIN3.Register(),
	NameAIN4:         AIN4.Register(),
	NameAIN5:         AIN5.Register(),
	NameAIN6:         AIN6.Register(),
	NameAIN7:         AIN7.Register(),
	NameAIN8:         AIN8.Register(),
	NameAIN9:         AIN9.Register(),
	NameAIN10:        AIN10.Register(),
	NameAIN11:        AIN11.Register(),
	NameAIN12:        AIN12.Register(),
	NameAIN13:        AIN13.Register(),
	NameAIN48:        AIN48.Register(),
	NameAIN49:        AIN49.Register(),
	NameAIN50:        AIN50.Register(),
	NameAIN51:        AIN51.Register(),
	NameAIN52:        AIN52.Register(),
	NameAIN53:        AIN53.Register(),
	NameAIN54:        AIN54.Register(),
	NameAIN55:        AIN55.Register(),
	NameAIN56:        AIN56.Register(),
	NameDAC0:         DAC0.Register(),
	NameDAC1:         DAC1.Register(),
	NameTestUint32:   TEST_UINT32.Register(),
}
