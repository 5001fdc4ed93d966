package tools

import "github.com/hupe1980/tripmesh/tool"

// Defaults returns one instance of every built-in domain tool.
func Defaults() []tool.Tool {
	return []tool.Tool{
		NewSearchPlacesTool(),
		NewDistanceMatrixTool(),
		NewSearchHotelsTool(),
		NewGetReviewsTool(),
		NewEstimateBudgetTool(),
	}
}

// RegisterDefaults registers all built-in tools on the given runtime.
func RegisterDefaults(rt *tool.Runtime) {
	for _, t := range Defaults() {
		rt.Register(t)
	}
}
