package lights

import (
	"math"
	"strings"
	"testing"

	"github.com/df07/go-photon-mapper/pkg/core"
)

func testLights() []Light {
	return []Light{
		NewPointLight(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1)),
		NewPointLight(core.NewVec3(1, 0, 0), core.NewVec3(3, 3, 3)),
	}
}

func TestNewWeightedLightSampler_Normalization(t *testing.T) {
	// Non-normalized weights
	sampler := NewWeightedLightSampler(testLights(), []float64{1.0, 3.0})

	expectedWeights := []float64{0.25, 0.75}
	for i, expected := range expectedWeights {
		if math.Abs(sampler.GetLightProbability(i)-expected) > 1e-9 {
			t.Errorf("Normalized weight %d: expected %f, got %f", i, expected, sampler.GetLightProbability(i))
		}
	}
}

func TestNewWeightedLightSampler_ZeroWeights(t *testing.T) {
	// All zero weights should fallback to uniform
	sampler := NewWeightedLightSampler(testLights(), []float64{0.0, 0.0})

	for i := 0; i < 2; i++ {
		if math.Abs(sampler.GetLightProbability(i)-0.5) > 1e-9 {
			t.Errorf("Zero weight fallback %d: expected 0.5, got %f", i, sampler.GetLightProbability(i))
		}
	}
}

func TestNewWeightedLightSampler_MismatchedLength(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for mismatched lights/weights length")
		}
	}()

	NewWeightedLightSampler(testLights(), []float64{0.3, 0.3, 0.4})
}

func TestNewUniformLightSampler_EmptyLights(t *testing.T) {
	sampler := NewUniformLightSampler(nil)

	if sampler.GetLightCount() != 0 {
		t.Errorf("Expected 0 lights, got %d", sampler.GetLightCount())
	}
	light, prob, index := sampler.SampleLightEmission(0.5)
	if light != nil || prob != 0 || index != -1 {
		t.Errorf("Expected no light, got %v %f %d", light, prob, index)
	}
}

func TestWeightedLightSampler_SingleLightAlwaysFirst(t *testing.T) {
	lights := testLights()[:1]
	sampler := NewPowerLightSampler(lights)

	for _, u := range []float64{0, 0.5, 0.999999} {
		_, prob, index := sampler.SampleLightEmission(u)
		if index != 0 || prob != 1.0 {
			t.Errorf("u=%f: expected index 0 with probability 1, got %d %f", u, index, prob)
		}
	}
}

func TestWeightedLightSampler_SampleLightEmission(t *testing.T) {
	sampler := NewWeightedLightSampler(testLights(), []float64{0.3, 0.7})

	testCases := []struct {
		u             float64
		expectedIndex int
		expectedProb  float64
	}{
		{0.0, 0, 0.3},
		{0.1, 0, 0.3},
		{0.29, 0, 0.3},
		{0.31, 1, 0.7},
		{0.5, 1, 0.7},
		{0.99, 1, 0.7},
		{1.0, 1, 0.7}, // out of range falls back to the last light
	}

	for _, tc := range testCases {
		_, prob, lightIndex := sampler.SampleLightEmission(tc.u)

		if lightIndex != tc.expectedIndex {
			t.Errorf("u=%f: expected light %d, got light %d", tc.u, tc.expectedIndex, lightIndex)
		}
		if math.Abs(prob-tc.expectedProb) > 1e-9 {
			t.Errorf("u=%f: expected probability %f, got %f", tc.u, tc.expectedProb, prob)
		}
	}
}

func TestWeightedLightSampler_ZeroWeightNeverSelected(t *testing.T) {
	lights := append(testLights(), NewPointLight(core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 0)))
	sampler := NewPowerLightSampler(lights)

	for i := 0; i <= 100; i++ {
		_, _, index := sampler.SampleLightEmission(float64(i) / 100)
		if index == 2 {
			t.Fatalf("Selected a light with zero power at u=%f", float64(i)/100)
		}
	}
}

func TestNewLightSampler_Policies(t *testing.T) {
	tests := []struct {
		name          string
		policy        SelectionPolicy
		expectedFirst float64
		wantErr       bool
	}{
		{"default is uniform", "", 0.5, false},
		{"uniform", SelectionUniform, 0.5, false},
		{"power weighted", SelectionPower, 0.25, false},
		{"unknown", SelectionPolicy("random"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sampler, err := NewLightSampler(tt.policy, testLights())
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewLightSampler error = %v, wantErr %t", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if math.Abs(sampler.GetLightProbability(0)-tt.expectedFirst) > 1e-9 {
				t.Errorf("Expected first light probability %f, got %f", tt.expectedFirst, sampler.GetLightProbability(0))
			}
		})
	}
}

func TestWeightedLightSampler_String(t *testing.T) {
	s := NewUniformLightSampler(testLights()).String()
	if !strings.Contains(s, "2 lights") || !strings.Contains(s, "point") {
		t.Errorf("Unexpected string: %s", s)
	}
}

func TestPointLight_EmitPhotonRay(t *testing.T) {
	position := core.NewVec3(50, 60, 70)
	emission := core.NewVec3(1, 2, 3)
	light := NewPointLight(position, emission)
	sampler := core.NewSeededSampler(3)

	for i := 0; i < 100; i++ {
		ray := light.EmitPhotonRay(sampler)
		if ray.Origin != position {
			t.Fatalf("Expected origin %v, got %v", position, ray.Origin)
		}
		if ray.Flux != emission {
			t.Fatalf("Expected flux %v, got %v", emission, ray.Flux)
		}
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Fatalf("Direction not normalized: %v", ray.Direction)
		}
	}
}
