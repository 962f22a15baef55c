package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for GeoJSON-style APIs (ORS).
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Format coordinates as "lat,lon" for query-string APIs (Google).
func (c Coordinates) LatLonString() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
