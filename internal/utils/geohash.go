package utils

import (
	"github.com/mmcloughlin/geohash"
	"github.com/piresc/tripstats/internal/pkg/models"
)

// PointGeohashPrecision is the geohash length attached to trip point log lines (~150m cells)
const PointGeohashPrecision = 7

// EncodePoint converts a point to a geohash string
func EncodePoint(p models.Point) string {
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, PointGeohashPrecision)
}

// DecodeGeohash converts a geohash string to the center of its cell
func DecodeGeohash(hash string) models.Point {
	lat, lng := geohash.Decode(hash)
	return models.Point{Latitude: lat, Longitude: lng}
}
