// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"math"

	"github.com/khurrumsaleem/mcdc-go/rng"
	"github.com/khurrumsaleem/mcdc-go/types"
)

// rotate builds a new direction from an incoming direction u, a polar
// cosine mu (= cos of the scattering angle relative to u), and an
// azimuthal angle phi, :
//
//	u' = u*mu + (rotation of u's perpendicular component by phi)*sqrt(1-mu^2)
//
// Uses the numerically stable branch swapping y/z roles when |u.Z| is
// close to 1, avoiding the near-zero denominator of the usual
// perpendicular-basis construction at the poles.
func rotate(u types.Vec3, mu, phi float64) types.Vec3 {
	sinTheta := math.Sqrt(math.Max(0, 1-mu*mu))
	cosPhi := math.Cos(phi)
	sinPhi := math.Sin(phi)

	if math.Abs(u.Z) < 0.99999 {
		denom := math.Sqrt(1 - u.Z*u.Z)
		return types.Vec3{
			X: u.X*mu + sinTheta*(u.X*u.Z*cosPhi-u.Y*sinPhi)/denom,
			Y: u.Y*mu + sinTheta*(u.Y*u.Z*cosPhi+u.X*sinPhi)/denom,
			Z: u.Z*mu - sinTheta*cosPhi*denom,
		}
	}

	// |u.Z| ~ 1: swap roles of y and z to avoid the vanishing denom
	denom := math.Sqrt(1 - u.Y*u.Y)
	return types.Vec3{
		X: u.X*mu + sinTheta*(u.X*u.Y*cosPhi-u.Z*sinPhi)/denom,
		Z: u.Z*mu + sinTheta*(u.Z*u.Y*cosPhi+u.X*sinPhi)/denom,
		Y: u.Y*mu - sinTheta*cosPhi*denom,
	}
}

// isotropicDirection samples a uniformly distributed direction on the
// unit sphere.
func isotropicDirection(str *rng.Stream) types.Vec3 {
	mu := 2*str.Draw() - 1
	phi := 2 * math.Pi * str.Draw()
	sinTheta := math.Sqrt(math.Max(0, 1-mu*mu))
	return types.Vec3{
		X: sinTheta * math.Cos(phi),
		Y: sinTheta * math.Sin(phi),
		Z: mu,
	}
}

// sampleScatterDirection builds the outgoing direction for an
// isotropic-in-lab-frame scattering event: draws its own mu/phi and
// rotates the incoming direction.
func sampleScatterDirection(u types.Vec3, str *rng.Stream) types.Vec3 {
	mu := 2*str.Draw() - 1
	phi := 2 * math.Pi * str.Draw()
	return rotate(u, mu, phi)
}
