package domain

type MeasurementName string

const (
	MeasurementLength        MeasurementName = "Length"
	MeasurementChest         MeasurementName = "Chest"
	MeasurementWaist         MeasurementName = "Waist"
	MeasurementHip           MeasurementName = "Hip"
	MeasurementShoulder      MeasurementName = "Shoulder"
	MeasurementSleeveLength  MeasurementName = "Sleeve Length"
	MeasurementSleeveOpening MeasurementName = "Sleeve Opening"
	MeasurementArmhole       MeasurementName = "Armhole"
	MeasurementNeckFront     MeasurementName = "Neck Front"
	MeasurementNeckBack      MeasurementName = "Neck Back"
)

// MeasurementNames lists the selectable measurements in display order
var MeasurementNames = []MeasurementName{
	MeasurementLength,
	MeasurementChest,
	MeasurementWaist,
	MeasurementHip,
	MeasurementShoulder,
	MeasurementSleeveLength,
	MeasurementSleeveOpening,
	MeasurementArmhole,
	MeasurementNeckFront,
	MeasurementNeckBack,
}

// Measurement is a single body measurement in inches
type Measurement struct {
	Name  MeasurementName
	Value float64
}

func NewMeasurement(name MeasurementName) *Measurement {
	return &Measurement{Name: name}
}

// IsValid reports whether the name is one of MeasurementNames
func (n MeasurementName) IsValid() bool {
	for _, known := range MeasurementNames {
		if n == known {
			return true
		}
	}
	return false
}

// Next cycles forward through MeasurementNames, wrapping at the end.
// Unknown names restart at the first entry.
func (n MeasurementName) Next() MeasurementName {
	return n.shift(1)
}

// Prev cycles backward through MeasurementNames
func (n MeasurementName) Prev() MeasurementName {
	return n.shift(-1)
}

func (n MeasurementName) shift(delta int) MeasurementName {
	count := len(MeasurementNames)
	for i, known := range MeasurementNames {
		if n == known {
			return MeasurementNames[(i+delta+count)%count]
		}
	}
	return MeasurementNames[0]
}
