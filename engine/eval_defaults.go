package engine

// DefaultWeights is a positional table: every disc is worth 32 units times
// its classic cell value (corner 30, C -12, X -15, edges and inner rings
// 0, -1 or -3). cmd/export_eval regenerates this file from a tuned table.
var DefaultWeights = Weights{960, -384, 0, -32, -480, -96, -96, 0, -32, -32}
