package gateway

import "math/rand"

// Simulated gateway latency bounds, in milliseconds. Draws are uniform over
// the half-open range [MinLatencyMS, MaxLatencyMS).
const (
	MinLatencyMS = 100
	MaxLatencyMS = 5000
)

// LatencyFunc produces a synthetic processing delay in milliseconds.
type LatencyFunc func() int

// UniformLatency draws an independent delay for each call, modelling the
// variable response time of a real payment network.
func UniformLatency() int {
	return MinLatencyMS + rand.Intn(MaxLatencyMS-MinLatencyMS)
}
