// Package tools provides the built-in domain tools backing the planning
// agents: place search, reviews, hotel search, distance matrix, and budget
// estimation. All tools run against static in-process datasets and are fully
// deterministic, which keeps orchestration runs reproducible.
package tools
