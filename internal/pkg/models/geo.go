package models

// Point is a latitude/longitude pair
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeoRect is an axis-aligned box given by its top-left and bottom-right corners.
// Corners are not normalized; an inverted rectangle contains nothing.
type GeoRect struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// Contains reports whether p lies inside r, borders included, on both axes
func (r GeoRect) Contains(p Point) bool {
	return p.Latitude >= r.TopLeft.Latitude &&
		p.Longitude >= r.TopLeft.Longitude &&
		p.Latitude <= r.BottomRight.Latitude &&
		p.Longitude <= r.BottomRight.Longitude
}
