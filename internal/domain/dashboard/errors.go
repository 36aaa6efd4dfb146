package dashboard

import "errors"

var (
	errNonFinite      = errors.New("coordinates must be finite numbers")
	errLatitudeRange  = errors.New("latitude must be within -90..90")
	errLongitudeRange = errors.New("longitude must be within -180..180")
)
