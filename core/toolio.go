package core

import "time"

// Typed payloads exchanged between the concrete domain tools and the agents
// that invoke them. Tools run in-process, so results cross the runtime
// boundary as Go values; agents type-assert against these instead of digging
// through raw maps.

// PlacesResult is the payload of maps.search_places.
type PlacesResult struct {
	Destination string `json:"destination"`
	Places      []POI  `json:"places"`
}

// ReviewsResult is the payload of reviews.get.
type ReviewsResult struct {
	Place   string   `json:"place"`
	Reviews []Review `json:"reviews"`
}

// HotelsResult is the payload of hotels.search.
type HotelsResult struct {
	Destination string        `json:"destination"`
	Hotels      []HotelOption `json:"hotels"`
}

// DistanceMatrixResult is the payload of maps.distance_matrix. Distances and
// durations are square matrices indexed like Locations.
type DistanceMatrixResult struct {
	Locations   []string            `json:"locations"`
	DistancesKM [][]float64         `json:"distances_km"`
	Durations   [][]time.Duration   `json:"durations"`
}
