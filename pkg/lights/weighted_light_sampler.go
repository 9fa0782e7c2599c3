package lights

import (
	"fmt"
)

// SelectionPolicy names a light selection strategy for photon emission
type SelectionPolicy string

const (
	SelectionUniform SelectionPolicy = "uniform" // every light equally likely
	SelectionPower   SelectionPolicy = "power"   // proportional to emitted luminance
)

// WeightedLightSampler implements light sampling with user-specified weights
// Weights must match the order of lights in the scene's Lights array
type WeightedLightSampler struct {
	lights  []Light
	weights []float64
}

// NewLightSampler creates the sampler for the given policy
func NewLightSampler(policy SelectionPolicy, lights []Light) (*WeightedLightSampler, error) {
	switch policy {
	case SelectionUniform, "":
		return NewUniformLightSampler(lights), nil
	case SelectionPower:
		return NewPowerLightSampler(lights), nil
	default:
		return nil, fmt.Errorf("unknown light selection policy %q", policy)
	}
}

// NewWeightedLightSampler creates a light sampler with specified weights
// weights slice must have the same length as lights slice
// weights will be automatically normalized to sum to 1.0
func NewWeightedLightSampler(lights []Light, weights []float64) *WeightedLightSampler {
	if len(lights) != len(weights) {
		panic(fmt.Sprintf("lights length (%d) must match weights length (%d)", len(lights), len(weights)))
	}

	normalizedWeights := make([]float64, len(weights))
	totalWeight := 0.0
	for _, weight := range weights {
		if weight < 0 {
			panic("weights must be non-negative")
		}
		totalWeight += weight
	}

	if totalWeight == 0 {
		// All weights are zero, use uniform distribution
		for i := range normalizedWeights {
			normalizedWeights[i] = 1.0 / float64(len(weights))
		}
	} else {
		for i, weight := range weights {
			normalizedWeights[i] = weight / totalWeight
		}
	}

	return &WeightedLightSampler{
		lights:  lights,
		weights: normalizedWeights,
	}
}

// NewUniformLightSampler creates a light sampler with equal weights for all lights
func NewUniformLightSampler(lights []Light) *WeightedLightSampler {
	weights := make([]float64, len(lights))
	for i := range weights {
		weights[i] = 1.0
	}
	return NewWeightedLightSampler(lights, weights)
}

// NewPowerLightSampler creates a light sampler weighted by each light's emitted luminance
func NewPowerLightSampler(lights []Light) *WeightedLightSampler {
	weights := make([]float64, len(lights))
	for i, light := range lights {
		weights[i] = max(0, light.Power().Luminance())
	}
	return NewWeightedLightSampler(lights, weights)
}

// SampleLightEmission selects a light using the fixed weights
// Returns the selected light, its selection probability, and its index
func (wls *WeightedLightSampler) SampleLightEmission(u float64) (Light, float64, int) {
	if len(wls.lights) == 0 {
		return nil, 0.0, -1
	}

	// A single light is always chosen without consuming the draw's meaning
	if len(wls.lights) == 1 {
		return wls.lights[0], 1.0, 0
	}

	var cumulativeProbability float64
	for i := 0; i < len(wls.lights); i++ {
		cumulativeProbability += wls.weights[i]
		if u < cumulativeProbability && wls.weights[i] > 0 {
			return wls.lights[i], wls.weights[i], i
		}
	}

	// Rounding left u above the last cumulative value; pick the last light with weight
	for i := len(wls.lights) - 1; i >= 0; i-- {
		if wls.weights[i] > 0 {
			return wls.lights[i], wls.weights[i], i
		}
	}
	return nil, 0.0, -1
}

// GetLightProbability returns the fixed probability for the light at the given index
func (wls *WeightedLightSampler) GetLightProbability(lightIndex int) float64 {
	if lightIndex < 0 || lightIndex >= len(wls.weights) {
		return 0.0
	}
	return wls.weights[lightIndex]
}

// GetLightCount returns the number of lights in this sampler
func (wls *WeightedLightSampler) GetLightCount() int {
	return len(wls.lights)
}

// String returns a string representation for debugging
func (wls *WeightedLightSampler) String() string {
	if len(wls.lights) == 0 {
		return "WeightedLightSampler{no lights}"
	}

	result := fmt.Sprintf("WeightedLightSampler{%d lights with fixed weights:\n", len(wls.lights))
	for i, light := range wls.lights {
		result += fmt.Sprintf("  [%d] %s: %.1f%%\n", i, light.Type(), wls.weights[i]*100)
	}
	result += "}"
	return result
}
