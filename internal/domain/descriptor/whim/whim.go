// Package whim computes Weighted Holistic Invariant Molecular descriptors:
// eigenvalue statistics of the weighted covariance of a molecule's 3D atomic
// coordinates.  Each weighting scheme draws a per-atom weight from the
// element table, normalized so carbon weighs 1; the unity scheme weighs
// every atom equally.
package whim

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// Scheme selects the per-atom weighting of the covariance matrix.
type Scheme string

const (
	SchemeUnity             Scheme = "unity"
	SchemeMass              Scheme = "mass"
	SchemePolarizability    Scheme = "polarizability"
	SchemeVdw               Scheme = "vdw"
	SchemeElectronegativity Scheme = "electronegativity"
)

// Schemes lists every supported scheme in canonical order.
func Schemes() []Scheme {
	return []Scheme{SchemeUnity, SchemeMass, SchemePolarizability, SchemeVdw, SchemeElectronegativity}
}

// ParseScheme converts the wire representation of a scheme into the enum.
// Matching is case-insensitive.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case SchemeUnity:
		return SchemeUnity, nil
	case SchemeMass:
		return SchemeMass, nil
	case SchemePolarizability:
		return SchemePolarizability, nil
	case SchemeVdw:
		return SchemeVdw, nil
	case SchemeElectronegativity:
		return SchemeElectronegativity, nil
	default:
		return "", errors.New(errors.ErrCodeUnknownScheme, "unknown weighting scheme").
			WithDetail("scheme=" + s)
	}
}

// ParseSchemes converts a list of wire scheme names, rejecting duplicates.
// An empty list defaults to the unity scheme.
func ParseSchemes(names []string) ([]Scheme, error) {
	if len(names) == 0 {
		return []Scheme{SchemeUnity}, nil
	}
	seen := make(map[Scheme]bool, len(names))
	out := make([]Scheme, 0, len(names))
	for _, name := range names {
		scheme, err := ParseScheme(name)
		if err != nil {
			return nil, err
		}
		if seen[scheme] {
			return nil, errors.New(errors.ErrCodeUnknownScheme, "duplicate weighting scheme").
				WithDetail("scheme=" + name)
		}
		seen[scheme] = true
		out = append(out, scheme)
	}
	return out, nil
}

// Result carries the WHIM descriptor vector for one weighting scheme:
// the directional eigenvalues λ1 ≥ λ2 ≥ λ3 with their proportions ν1, ν2,
// and the global size (T), shape (A, K) and volume (V) descriptors.
type Result struct {
	Scheme Scheme

	L1, L2, L3 float64
	Nu1, Nu2   float64

	T float64 // λ1 + λ2 + λ3
	A float64 // λ1λ2 + λ1λ3 + λ2λ3
	V float64 // T + A + λ1λ2λ3
	K float64 // eigenvalue anisotropy in [0, 1]
}

// atomWeight returns the scheme weight for one atom, normalized to carbon.
func atomWeight(a *graph.Atom, scheme Scheme) (float64, error) {
	if scheme == SchemeUnity {
		return 1, nil
	}
	w, err := graph.Weights(a.Symbol)
	if err != nil {
		return 0, err
	}
	carbon := graph.CarbonWeights()
	switch scheme {
	case SchemeMass:
		return w.Mass / carbon.Mass, nil
	case SchemePolarizability:
		return w.Polarizability / carbon.Polarizability, nil
	case SchemeVdw:
		// Volumes scale with the cube of the radius, so the ratio of cubes
		// equals the ratio of volumes without the 4π/3 factor.
		r := w.VdwRadius / carbon.VdwRadius
		return r * r * r, nil
	case SchemeElectronegativity:
		return w.Electronegativity / carbon.Electronegativity, nil
	default:
		return 0, errors.New(errors.ErrCodeUnknownScheme, "unknown weighting scheme").
			WithDetail("scheme=" + string(scheme))
	}
}

// Calculate computes the WHIM descriptors of m under one weighting scheme.
// It fails when the molecule has no atoms, when any atom lacks 3D
// coordinates, or when a non-unity scheme meets an element outside the
// weight table.
func Calculate(m *graph.Molecule, scheme Scheme) (*Result, error) {
	atoms := m.Atoms()
	if len(atoms) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyMolecule, "molecule has no atoms")
	}

	weights := make([]float64, len(atoms))
	totalWeight := 0.0
	for i, a := range atoms {
		if !a.HasCoords {
			return nil, errors.New(errors.ErrCodeMissingCoordinates, "molecule has atoms without 3D coordinates").
				WithDetailf("atom_index=%d symbol=%s", a.Index(), a.Symbol)
		}
		w, err := atomWeight(a, scheme)
		if err != nil {
			return nil, err
		}
		weights[i] = w
		totalWeight += w
	}

	// Weighted centroid.
	var cx, cy, cz float64
	for i, a := range atoms {
		cx += weights[i] * a.X
		cy += weights[i] * a.Y
		cz += weights[i] * a.Z
	}
	cx /= totalWeight
	cy /= totalWeight
	cz /= totalWeight

	// Weighted covariance of the centered coordinates.
	var sxx, sxy, sxz, syy, syz, szz float64
	for i, a := range atoms {
		x, y, z := a.X-cx, a.Y-cy, a.Z-cz
		w := weights[i]
		sxx += w * x * x
		sxy += w * x * y
		sxz += w * x * z
		syy += w * y * y
		syz += w * y * z
		szz += w * z * z
	}
	cov := mat.NewSymDense(3, []float64{
		sxx / totalWeight, sxy / totalWeight, sxz / totalWeight,
		sxy / totalWeight, syy / totalWeight, syz / totalWeight,
		sxz / totalWeight, syz / totalWeight, szz / totalWeight,
	})

	var eig mat.EigenSym
	if !eig.Factorize(cov, false) {
		return nil, errors.New(errors.ErrCodeDescriptorFailed, "eigendecomposition did not converge")
	}
	ev := eig.Values(nil) // ascending order
	l1, l2, l3 := ev[2], ev[1], ev[0]

	res := &Result{
		Scheme: scheme,
		L1:     l1,
		L2:     l2,
		L3:     l3,
		T:      l1 + l2 + l3,
		A:      l1*l2 + l1*l3 + l2*l3,
	}
	res.V = res.T + res.A + l1*l2*l3
	if res.T > 0 {
		res.Nu1 = l1 / res.T
		res.Nu2 = l2 / res.T
		k := 0.0
		for _, l := range []float64{l1, l2, l3} {
			d := l/res.T - 1.0/3.0
			if d < 0 {
				d = -d
			}
			k += d
		}
		res.K = k / (4.0 / 3.0)
	}
	return res, nil
}

// CalculateAll computes the descriptors for each scheme, failing on the
// first error.
func CalculateAll(m *graph.Molecule, schemes []Scheme) (map[Scheme]*Result, error) {
	out := make(map[Scheme]*Result, len(schemes))
	for _, scheme := range schemes {
		res, err := Calculate(m, scheme)
		if err != nil {
			return nil, err
		}
		out[scheme] = res
	}
	return out, nil
}
