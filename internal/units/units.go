// Package units provides shared constants and conversion for common
// laboratory quantities: volume, concentration, and mass.
package units

// Volume unit constants
const (
	Microliter = "µL"
	Milliliter = "mL"
	Liter      = "L"
)

// Concentration unit constants
const (
	Nanomolar  = "nM"
	Micromolar = "µM"
	Millimolar = "mM"
	Molar      = "M"
)

// Mass unit constants
const (
	Nanogram  = "ng"
	Microgram = "µg"
	Milligram = "mg"
	Gram      = "g"
)

// ValidVolumeUnits contains all valid volume unit values
var ValidVolumeUnits = []string{Microliter, Milliliter, Liter}

// ValidConcentrationUnits contains all valid concentration unit values
var ValidConcentrationUnits = []string{Nanomolar, Micromolar, Millimolar, Molar}

// ValidMassUnits contains all valid mass unit values
var ValidMassUnits = []string{Nanogram, Microgram, Milligram, Gram}

// Factors to each family's base unit. Volumes are stored in µL,
// concentrations in nM, masses in ng.
var (
	volumeToBase = map[string]float64{
		Microliter: 1,
		Milliliter: 1e3,
		Liter:      1e6,
	}
	concentrationToBase = map[string]float64{
		Nanomolar:  1,
		Micromolar: 1e3,
		Millimolar: 1e6,
		Molar:      1e9,
	}
	massToBase = map[string]float64{
		Nanogram:  1,
		Microgram: 1e3,
		Milligram: 1e6,
		Gram:      1e9,
	}
)

func isValid(unit string, valid []string) bool {
	for _, v := range valid {
		if unit == v {
			return true
		}
	}
	return false
}

// IsValidVolume checks if the given unit is a known volume unit
func IsValidVolume(unit string) bool { return isValid(unit, ValidVolumeUnits) }

// IsValidConcentration checks if the given unit is a known concentration unit
func IsValidConcentration(unit string) bool { return isValid(unit, ValidConcentrationUnits) }

// IsValidMass checks if the given unit is a known mass unit
func IsValidMass(unit string) bool { return isValid(unit, ValidMassUnits) }

func convert(value float64, from, to string, toBase map[string]float64) float64 {
	fromFactor, okFrom := toBase[from]
	toFactor, okTo := toBase[to]
	if !okFrom || !okTo {
		return value // unknown unit, leave the value unchanged
	}
	return value * fromFactor / toFactor
}

// ConvertVolume converts a volume between µL, mL, and L.
// Unknown units return the value unchanged.
func ConvertVolume(value float64, from, to string) float64 {
	return convert(value, from, to, volumeToBase)
}

// ConvertConcentration converts a concentration between nM, µM, mM, and M.
// Unknown units return the value unchanged.
func ConvertConcentration(value float64, from, to string) float64 {
	return convert(value, from, to, concentrationToBase)
}

// ConvertMass converts a mass between ng, µg, mg, and g.
// Unknown units return the value unchanged.
func ConvertMass(value float64, from, to string) float64 {
	return convert(value, from, to, massToBase)
}
