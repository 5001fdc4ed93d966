package tools

import (
	"sort"

	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

const searchHotelsName = "hotels.search"

// NewSearchHotelsTool returns the hotels.search tool. Results are filtered by
// minimum rating and optional price ceiling, then sorted best-first: highest
// rating, ties broken by lower price.
func NewSearchHotelsTool() *tool.FunctionTool {
	return tool.NewFunctionTool(
		searchHotelsName,
		"Search for accommodation options in a destination",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"destination": map[string]any{"type": "string", "description": "Destination city"},
				"min_rating":  map[string]any{"type": "number", "description": "Minimum acceptable rating"},
				"max_price":   map[string]any{"type": "number", "description": "Maximum price per night"},
			},
			"required": []string{"destination"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			key := matchCity(argString(args, "destination", ""))
			city := cities[key]

			minRating := argFloat(args, "min_rating", 0)
			maxPrice := argFloat(args, "max_price", 0)

			hotels := make([]core.HotelOption, 0, len(city.Hotels))
			for _, h := range city.Hotels {
				if h.Rating < minRating {
					continue
				}
				if maxPrice > 0 && h.PricePerNight > maxPrice {
					continue
				}
				hotels = append(hotels, h)
			}

			sort.SliceStable(hotels, func(i, j int) bool {
				if hotels[i].Rating != hotels[j].Rating {
					return hotels[i].Rating > hotels[j].Rating
				}
				return hotels[i].PricePerNight < hotels[j].PricePerNight
			})

			toolCtx.LogDebug("tools.search_hotels", "destination", city.Name, "count", len(hotels))

			return core.HotelsResult{Destination: city.Name, Hotels: hotels}, nil
		},
	)
}
