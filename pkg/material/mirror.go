package material

import "github.com/df07/go-photon-mapper/pkg/core"

// sampleMirror returns the deterministic perfect reflection
func (m Material) sampleMirror(outgoing, normal core.Vec3) SampleResult {
	return SampleResult{
		Incident: reflect(outgoing, normal),
		BRDF:     m.Reflectance,
		Specular: true,
	}
}

// reflect mirrors w about n: r = 2*dot(w,n)*n - w
func reflect(w, n core.Vec3) core.Vec3 {
	return n.Multiply(2 * w.Dot(n)).Subtract(w)
}
