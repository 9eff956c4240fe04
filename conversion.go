package labjack

// Adc converts a register's raw voltage reading into an application-level
// digital unit (a temperature from a thermocouple, a load from a cell, or
// simply the voltage itself). Ported from the upstream Adc trait's
// to_digital hook.
type Adc[T any] interface {
	ToDigital(voltage float64) T
}

// Dac is the write-side counterpart of Adc: it converts an application-level
// digital unit into the voltage to command a DAC channel to.
type Dac[T any] interface {
	ToVoltage(digital T) float64
}

// IdentityAdc is the Adc that performs no conversion; Read with it behaves
// like a raw voltage read.
type IdentityAdc struct{}

func (IdentityAdc) ToDigital(voltage float64) float64 { return voltage }

// IdentityDac is the Dac that performs no conversion; Write with it behaves
// like a raw voltage write.
type IdentityDac struct{}

func (IdentityDac) ToVoltage(digital float64) float64 { return digital }
