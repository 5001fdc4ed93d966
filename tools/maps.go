package tools

import (
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

const (
	searchPlacesName   = "maps.search_places"
	distanceMatrixName = "maps.distance_matrix"

	defaultPlaceLimit = 5

	// walkSpeedKMH converts leg distances into rough walking durations.
	walkSpeedKMH = 4.5
)

// NewSearchPlacesTool returns the maps.search_places tool. It resolves the
// destination from the explicit destination argument or, failing that, from
// the free-text query, then returns up to limit points of interest.
func NewSearchPlacesTool() *tool.FunctionTool {
	return tool.NewFunctionTool(
		searchPlacesName,
		"Search for points of interest in a destination",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":       map[string]any{"type": "string", "description": "Free-text travel query"},
				"destination": map[string]any{"type": "string", "description": "Explicit destination, overrides query inference"},
				"category":    map[string]any{"type": "string", "description": "Restrict results to a POI category"},
				"limit":       map[string]any{"type": "integer", "description": "Maximum number of results"},
			},
			"required": []string{"query"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			key := matchCity(argString(args, "destination", argString(args, "query", "")))
			city := cities[key]

			limit := argInt(args, "limit", defaultPlaceLimit)
			if limit < 1 {
				limit = 1
			}

			places := make([]core.POI, 0, limit)
			category := argString(args, "category", "")
			for _, p := range city.Places {
				if category != "" && !strings.EqualFold(p.Category, category) {
					continue
				}
				places = append(places, p)
				if len(places) == limit {
					break
				}
			}

			toolCtx.LogDebug("tools.search_places", "destination", city.Name, "count", len(places))

			return core.PlacesResult{Destination: city.Name, Places: places}, nil
		},
	)
}

// NewDistanceMatrixTool returns the maps.distance_matrix tool. Distances
// between known places come from the great-circle distance of their stored
// coordinates; unknown names fall back to a deterministic pseudo-distance so
// the matrix is always complete and reproducible.
func NewDistanceMatrixTool() *tool.FunctionTool {
	return tool.NewFunctionTool(
		distanceMatrixName,
		"Calculate pairwise distances and travel durations between locations",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"locations": map[string]any{"type": "array", "description": "Location names, at least two"},
			},
			"required": []string{"locations"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			locations := argStringSlice(args, "locations")

			n := len(locations)
			distances := make([][]float64, n)
			durations := make([][]time.Duration, n)
			for i := range locations {
				distances[i] = make([]float64, n)
				durations[i] = make([]time.Duration, n)
				for j := range locations {
					if i == j {
						continue
					}
					km := pairDistanceKM(locations[i], locations[j])
					distances[i][j] = km
					durations[i][j] = time.Duration(km / walkSpeedKMH * float64(time.Hour))
				}
			}

			return core.DistanceMatrixResult{
				Locations:   locations,
				DistancesKM: distances,
				Durations:   durations,
			}, nil
		},
	)
}

// pairDistanceKM returns the distance between two named locations, symmetric
// in its arguments.
func pairDistanceKM(a, b string) float64 {
	latA, lngA, okA := lookupCoordinates(a)
	latB, lngB, okB := lookupCoordinates(b)
	if okA && okB {
		return haversineKM(latA, lngA, latB, lngB)
	}
	return pseudoDistanceKM(a, b)
}

// haversineKM is the great-circle distance between two coordinates.
func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKM = 6371.0
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// pseudoDistanceKM hashes the sorted name pair into a stable distance between
// 1 and 15 km.
func pseudoDistanceKM(a, b string) float64 {
	lo, hi := strings.ToLower(a), strings.ToLower(b)
	if lo > hi {
		lo, hi = hi, lo
	}
	h := fnv.New32a()
	h.Write([]byte(lo))
	h.Write([]byte{0})
	h.Write([]byte(hi))
	return 1 + float64(h.Sum32()%1400)/100
}
