package usecase

import (
	"github.com/piresc/tripstats/internal/pkg/models"
)

// countTripsPassed returns the number of distinct trips with at least one
// point inside rect.
func countTripsPassed(points []models.TripPoint, rect models.GeoRect) int32 {
	seen := make(map[models.TripID]struct{})
	for _, tp := range points {
		if rect.Contains(tp.Point) {
			seen[tp.TripID] = struct{}{}
		}
	}
	return int32(len(seen))
}

// startedOrStopped returns the distinct trips whose begin or end point lies
// inside rect, in first-match order.
func startedOrStopped(begins, ends []models.TripPoint, rect models.GeoRect) []models.TripID {
	seen := make(map[models.TripID]struct{})
	var ids []models.TripID

	for _, log := range [][]models.TripPoint{begins, ends} {
		for _, tp := range log {
			if !rect.Contains(tp.Point) {
				continue
			}
			if _, ok := seen[tp.TripID]; ok {
				continue
			}
			seen[tp.TripID] = struct{}{}
			ids = append(ids, tp.TripID)
		}
	}
	return ids
}

// sumFares adds up the fares of ids. Trips missing from fares contribute 0.
func sumFares(ids []models.TripID, fares map[models.TripID]float64) float64 {
	var total float64
	for _, id := range ids {
		total += fares[id]
	}
	return total
}
