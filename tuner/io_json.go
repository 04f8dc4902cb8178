// tuner/io_json.go
package tuner

import (
	"encoding/json"
	"fmt"
	"os"

	"othello-engine/engine"
)

const weightsLayoutTag = "regions_v1"

type weightsJSON struct {
	Layout  string   `json:"layout"`
	Scale   int      `json:"scale"`
	Regions []string `json:"regions"`
	Weights []int    `json:"weights"`
	MSE     float64  `json:"mse,omitempty"`
	MAE     float64  `json:"mae,omitempty"`
}

// SaveWeights writes w as JSON through a temporary file.
func SaveWeights(path string, w *engine.Weights, st Stats) error {
	payload := weightsJSON{
		Layout:  weightsLayoutTag,
		Scale:   engine.WeightScale,
		Weights: w[:],
		MSE:     st.MSE,
		MAE:     st.MAE,
	}
	for _, m := range engine.RegionMasks {
		payload.Regions = append(payload.Regions, fmt.Sprintf("%016x", m))
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadWeights reads a table written by SaveWeights.
func LoadWeights(path string) (engine.Weights, error) {
	var w engine.Weights
	b, err := os.ReadFile(path)
	if err != nil {
		return w, err
	}
	var p weightsJSON
	if err := json.Unmarshal(b, &p); err != nil {
		return w, fmt.Errorf("%s: %w", path, err)
	}
	if p.Layout != "" && p.Layout != weightsLayoutTag {
		return w, fmt.Errorf("%s: unknown layout %q", path, p.Layout)
	}
	if p.Scale != 0 && p.Scale != engine.WeightScale {
		return w, fmt.Errorf("%s: scale %d, want %d", path, p.Scale, engine.WeightScale)
	}
	if len(p.Weights) != engine.NumRegions {
		return w, fmt.Errorf("%s: %d weights, want %d", path, len(p.Weights), engine.NumRegions)
	}
	copy(w[:], p.Weights)
	return w, nil
}
