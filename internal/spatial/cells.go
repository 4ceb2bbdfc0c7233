package spatial

import "github.com/golang/geo/s2"

// MaxCellLevel is the deepest s2 cell level accepted for aggregation
const MaxCellLevel = 30

// CellToken returns the token of the s2 cell at level containing the point
func CellToken(lat, lng float64, level int) string {
	if level < 0 {
		level = 0
	}
	if level > MaxCellLevel {
		level = MaxCellLevel
	}
	return s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(level).ToToken()
}

// CellCenter returns the center of the cell identified by token as (lat, lng)
func CellCenter(token string) (float64, float64) {
	ll := s2.CellIDFromToken(token).LatLng()
	return ll.Lat.Degrees(), ll.Lng.Degrees()
}
