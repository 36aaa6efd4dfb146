package dashboard

// UnitSystem is the paired choice of temperature and wind speed units.
type UnitSystem string

const (
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// UnitLabels holds the display suffixes for the active unit system.
type UnitLabels struct {
	Temperature string `json:"temperature"`
	Wind        string `json:"wind"`
}

// Toggle flips between metric and imperial.
func (u UnitSystem) Toggle() UnitSystem {
	if u == UnitsImperial {
		return UnitsMetric
	}
	return UnitsImperial
}

// Labels returns the display suffixes for the system.
func (u UnitSystem) Labels() UnitLabels {
	if u == UnitsImperial {
		return UnitLabels{Temperature: "°F", Wind: "mph"}
	}
	return UnitLabels{Temperature: "°C", Wind: "m/s"}
}

// Valid reports whether u names a known unit system.
func (u UnitSystem) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}
