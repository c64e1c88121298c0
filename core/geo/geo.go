package geo

import "math"

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// earthRadiusMiles is the mean Earth radius used for great-circle distance.
const earthRadiusMiles = 3958.8

// travelMinutesPerMile assumes an average speed of roughly 30 mph.
const travelMinutesPerMile = 2.0

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula.
func DistanceMiles(a, b Coordinates) float64 {
	latA := a.Lat * math.Pi / 180
	latB := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// TravelMinutes estimates driving time for the given distance. The estimate
// is linear and rounds up to the next whole minute.
func TravelMinutes(miles float64) int {
	if miles <= 0 {
		return 0
	}
	return int(math.Ceil(miles * travelMinutesPerMile))
}
