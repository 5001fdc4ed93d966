package tools

import (
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
)

const getReviewsName = "reviews.get"

// NewGetReviewsTool returns the reviews.get tool. Curated reviews exist for a
// handful of flagship places; everything else gets a small generic set so the
// payload is never empty.
func NewGetReviewsTool() *tool.FunctionTool {
	return tool.NewFunctionTool(
		getReviewsName,
		"Fetch traveler reviews for a place or hotel",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"place": map[string]any{"type": "string", "description": "Name of the place or hotel"},
				"limit": map[string]any{"type": "integer", "description": "Maximum number of reviews"},
			},
			"required": []string{"place"},
		},
		func(toolCtx *core.ToolContext, args map[string]any) (any, error) {
			place := argString(args, "place", "")

			reviews, ok := placeReviews[place]
			if !ok {
				reviews = genericReviews
			}

			limit := argInt(args, "limit", len(reviews))
			if limit < len(reviews) && limit > 0 {
				reviews = reviews[:limit]
			}

			out := make([]core.Review, len(reviews))
			copy(out, reviews)

			return core.ReviewsResult{Place: place, Reviews: out}, nil
		},
	)
}
