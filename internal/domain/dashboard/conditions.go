package dashboard

// ConditionCategory is the coarse display bucket for a WMO weather code.
type ConditionCategory string

const (
	CategoryClear           ConditionCategory = "clear"
	CategoryMainlyClear     ConditionCategory = "mainly_clear"
	CategoryPartlyCloudy    ConditionCategory = "partly_cloudy"
	CategoryOvercast        ConditionCategory = "overcast"
	CategoryFog             ConditionCategory = "fog"
	CategoryDrizzle         ConditionCategory = "drizzle"
	CategoryFreezingDrizzle ConditionCategory = "freezing_drizzle"
	CategoryRain            ConditionCategory = "rain"
	CategoryFreezingRain    ConditionCategory = "freezing_rain"
	CategorySnow            ConditionCategory = "snow"
	CategorySnowGrains      ConditionCategory = "snow_grains"
	CategoryRainShowers     ConditionCategory = "rain_showers"
	CategorySnowShowers     ConditionCategory = "snow_showers"
	CategoryThunderstorm    ConditionCategory = "thunderstorm"
	CategoryUnknown         ConditionCategory = "unknown"
)

// CategoryForCode maps a WMO weather interpretation code to its display
// category. Unrecognized codes map to CategoryUnknown.
func CategoryForCode(code int) ConditionCategory {
	switch code {
	case 0:
		return CategoryClear
	case 1:
		return CategoryMainlyClear
	case 2:
		return CategoryPartlyCloudy
	case 3:
		return CategoryOvercast
	case 45, 48:
		return CategoryFog
	case 51, 53, 55:
		return CategoryDrizzle
	case 56, 57:
		return CategoryFreezingDrizzle
	case 61, 63, 65:
		return CategoryRain
	case 66, 67:
		return CategoryFreezingRain
	case 71, 73, 75:
		return CategorySnow
	case 77:
		return CategorySnowGrains
	case 80, 81, 82:
		return CategoryRainShowers
	case 85, 86:
		return CategorySnowShowers
	case 95, 96, 99:
		return CategoryThunderstorm
	default:
		return CategoryUnknown
	}
}
