// Package registers holds the statically-typed LabJack register catalog:
// one Go value per named Modbus register, access-controlled at compile time
// via the modbus.Readable/Writable marker interfaces. generated.go is a hand
// curated subset of LabJack's vendor register JSON, with the same register
// names, addresses, types and access modes that cmd/labjack-regsgen derives
// from cmd/labjack-regsgen/testdata/registers.json; its byName keys use the
// Name constants below, which the generator's raw output spells differently
// for names containing underscores (NamePRODUCT_ID rather than NameProductID).
package registers

import "github.com/bennjii/labjack/internal/modbus"

// Name is the sum tag enumerating every catalog entry, letting callers that
// need to go from a dynamic string (a config file, a CLI flag) to a typed
// register look one up via Lookup.
type Name int

const (
	NameProductID Name = iota
	NameSerialNumber
	NameFIO0
	NameFIO1
	NameFIO2
	NameFIO3
	NameFIO4
	NameFIO5
	NameFIO6
	NameFIO7
	NameAIN0
	NameAIN1
	NameAIN2
	NameAIN3
	NameAIN4
	NameAIN5
	NameAIN6
	NameAIN7
	NameAIN8
	NameAIN9
	NameAIN10
	NameAIN11
	NameAIN12
	NameAIN13
	NameAIN48
	NameAIN49
	NameAIN50
	NameAIN51
	NameAIN52
	NameAIN53
	NameAIN54
	NameAIN55
	NameAIN56
	NameDAC0
	NameDAC1
	NameTestUint32
)

func (n Name) String() string {
	if s, ok := names[n]; ok {
		return s
	}
	return "Unknown"
}

var names = map[Name]string{
	NameProductID:    "PRODUCT_ID",
	NameSerialNumber: "SERIAL_NUMBER",
	NameFIO0:         "FIO0",
	NameFIO1:         "FIO1",
	NameFIO2:         "FIO2",
	NameFIO3:         "FIO3",
	NameFIO4:         "FIO4",
	NameFIO5:         "FIO5",
	NameFIO6:         "FIO6",
	NameFIO7:         "FIO7",
	NameAIN0:         "AIN0",
	NameAIN1:         "AIN1",
	NameAIN2:         "AIN2",
	NameAIN3:         "AIN3",
	NameAIN4:         "AIN4",
	NameAIN5:         "AIN5",
	NameAIN6:         "AIN6",
	NameAIN7:         "AIN7",
	NameAIN8:         "AIN8",
	NameAIN9:         "AIN9",
	NameAIN10:        "AIN10",
	NameAIN11:        "AIN11",
	NameAIN12:        "AIN12",
	NameAIN13:        "AIN13",
	NameAIN48:        "AIN48",
	NameAIN49:        "AIN49",
	NameAIN50:        "AIN50",
	NameAIN51:        "AIN51",
	NameAIN52:        "AIN52",
	NameAIN53:        "AIN53",
	NameAIN54:        "AIN54",
	NameAIN55:        "AIN55",
	NameAIN56:        "AIN56",
	NameDAC0:         "DAC0",
	NameDAC1:         "DAC1",
	NameTestUint32:   "TEST_UINT32",
}

// Lookup resolves a catalog Name to its Register. The bool result is false
// for a Name with no catalog entry (should not occur for any Name constant
// above; Lookup exists for completeness against future catalog growth).
func Lookup(n Name) (modbus.Register, bool) {
	r, ok := byName[n]
	return r, ok
}
