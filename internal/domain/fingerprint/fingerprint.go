// Package fingerprint encodes molecular structure as fixed-length bit
// vectors for similarity calculations.  Two families are provided: path
// fingerprints hash linear bond paths, environment fingerprints hash
// growing circular neighborhoods around each atom.
package fingerprint

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"sort"
	"strings"

	"github.com/turtacn/ChemDesc-Engine/internal/domain/graph"
	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Kind
// ─────────────────────────────────────────────────────────────────────────────

// Kind identifies which fingerprint algorithm produced a bit vector.
type Kind string

const (
	KindPath        Kind = "path"
	KindEnvironment Kind = "environment"
)

// IsValid reports whether the kind is one of the defined algorithm names.
func (k Kind) IsValid() bool {
	return k == KindPath || k == KindEnvironment
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind parses a fingerprint kind name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", errors.New(errors.ErrCodeValidation, "unknown fingerprint kind").
			WithDetail("kind=" + s)
	}
	return k, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// Fingerprint is a fixed-length bit vector.  Bit i lives in byte i/8 at bit
// position i%8.  The on-bit count is maintained incrementally so similarity
// calculations never rescan the vector.
type Fingerprint struct {
	// Kind identifies the producing algorithm.
	Kind Kind `json:"kind"`

	// Bits is the packed bit vector.
	Bits []byte `json:"bits"`

	// Length is the total number of bits.
	Length int `json:"length"`

	onBits int
}

// New returns an all-zero fingerprint of the given kind and bit length.
// The length must be a positive multiple of 8.
func New(kind Kind, length int) (*Fingerprint, error) {
	if !kind.IsValid() {
		return nil, errors.New(errors.ErrCodeValidation, "unknown fingerprint kind").
			WithDetail("kind=" + kind.String())
	}
	if length <= 0 || length%8 != 0 {
		return nil, errors.New(errors.ErrCodeFingerprintSize, "fingerprint length must be a positive multiple of 8").
			WithDetailf("length=%d", length)
	}
	return &Fingerprint{
		Kind:   kind,
		Bits:   make([]byte, length/8),
		Length: length,
	}, nil
}

// FromBytes rebuilds a fingerprint from its packed representation, as read
// back from storage or the wire. The byte count must match the bit length.
func FromBytes(kind Kind, data []byte, length int) (*Fingerprint, error) {
	fp, err := New(kind, length)
	if err != nil {
		return nil, err
	}
	if len(data) != length/8 {
		return nil, errors.New(errors.ErrCodeFingerprintSize, "fingerprint data does not match its declared length").
			WithDetailf("length=%d bytes=%d", length, len(data))
	}
	copy(fp.Bits, data)
	for _, b := range data {
		fp.onBits += bits.OnesCount8(b)
	}
	return fp, nil
}

// GetBit reports whether the bit at index is set. Out-of-range indices read
// as unset.
func (fp *Fingerprint) GetBit(index int) bool {
	if index < 0 || index >= fp.Length {
		return false
	}
	return fp.Bits[index/8]&(1<<uint(index%8)) != 0
}

// SetBit sets the bit at index. Out-of-range indices are ignored.
func (fp *Fingerprint) SetBit(index int) {
	if index < 0 || index >= fp.Length {
		return
	}
	mask := byte(1) << uint(index%8)
	if fp.Bits[index/8]&mask == 0 {
		fp.Bits[index/8] |= mask
		fp.onBits++
	}
}

// OnBits returns the number of set bits.
func (fp *Fingerprint) OnBits() int {
	return fp.onBits
}

// Density returns the fraction of set bits, useful when tuning sizes.
func (fp *Fingerprint) Density() float64 {
	if fp.Length == 0 {
		return 0
	}
	return float64(fp.onBits) / float64(fp.Length)
}

func (fp *Fingerprint) String() string {
	return fmt.Sprintf("Fingerprint{kind=%s, length=%d, on=%d}", fp.Kind, fp.Length, fp.onBits)
}

// setHash folds a 64-bit hash into the vector.
func (fp *Fingerprint) setHash(h uint64) {
	fp.SetBit(int(h % uint64(fp.Length)))
}

// ─────────────────────────────────────────────────────────────────────────────
// Path Fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// PathFingerprint hashes every simple bond path of up to depth bonds into a
// bit vector of the given length. Paths are enumerated by depth-first walks
// starting from every atom, so each path is visited from both ends; the
// encoding is direction-sensitive and both directions contribute, which
// keeps the enumeration simple and the result permutation-invariant.
// Single atoms count as paths of zero bonds.
func PathFingerprint(m *graph.Molecule, size, depth int) (*Fingerprint, error) {
	fp, err := New(KindPath, size)
	if err != nil {
		return nil, err
	}
	if depth < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "path depth must be positive").
			WithDetailf("depth=%d", depth)
	}

	visited := make([]bool, m.AtomCount())
	var walk func(a *graph.Atom, code string, remaining int)
	walk = func(a *graph.Atom, code string, remaining int) {
		fp.setHash(hashString(code))
		if remaining == 0 {
			return
		}
		visited[a.Index()] = true
		for _, bond := range m.IncidentBonds(a) {
			next := bond.Other(a)
			if visited[next.Index()] {
				continue
			}
			walk(next, code+orderCode(bond.Order())+next.Symbol, remaining-1)
		}
		visited[a.Index()] = false
	}

	for _, atom := range m.Atoms() {
		walk(atom, atom.Symbol, depth)
	}
	return fp, nil
}

// orderCode encodes a bond order as a single path character.
func orderCode(o graph.BondOrder) string {
	switch o {
	case graph.OrderSingle:
		return "-"
	case graph.OrderDouble:
		return "="
	case graph.OrderTriple:
		return "#"
	case graph.OrderAromatic:
		return ":"
	default:
		return "?"
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Environment Fingerprint
// ─────────────────────────────────────────────────────────────────────────────

// EnvironmentFingerprint hashes growing circular atom neighborhoods into a
// bit vector of the given length. Round zero assigns each atom an invariant
// code from its element, charge, aromaticity, hydrogen count and degree;
// each following round up to radius rehashes the atom's code together with
// the sorted codes of its bonded neighbors. Every round of every atom sets
// one bit, so substructures shared by two molecules light up the same bits
// regardless of atom numbering.
func EnvironmentFingerprint(m *graph.Molecule, size, radius int) (*Fingerprint, error) {
	fp, err := New(KindEnvironment, size)
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, errors.New(errors.ErrCodeValidation, "environment radius must not be negative").
			WithDetailf("radius=%d", radius)
	}

	codes := make([]uint64, m.AtomCount())
	for i, atom := range m.Atoms() {
		codes[i] = hashString(fmt.Sprintf("%s|%d|%t|%d|%d",
			atom.Symbol, atom.FormalCharge, atom.Aromatic, atom.Hydrogens, m.Degree(atom)))
		fp.setHash(codes[i])
	}

	for r := 0; r < radius; r++ {
		next := make([]uint64, len(codes))
		for i, atom := range m.Atoms() {
			neighborhood := make([]string, 0, m.Degree(atom))
			for _, bond := range m.IncidentBonds(atom) {
				neighborhood = append(neighborhood,
					fmt.Sprintf("%s%016x", orderCode(bond.Order()), codes[bond.Other(atom).Index()]))
			}
			sort.Strings(neighborhood)
			next[i] = hashString(fmt.Sprintf("%016x|%s", codes[i], strings.Join(neighborhood, ",")))
			fp.setHash(next[i])
		}
		codes = next
	}
	return fp, nil
}

// Compute dispatches to the named algorithm; extent is the path depth or
// the environment radius depending on the kind.
func Compute(m *graph.Molecule, kind Kind, size, extent int) (*Fingerprint, error) {
	switch kind {
	case KindPath:
		return PathFingerprint(m, size, extent)
	case KindEnvironment:
		return EnvironmentFingerprint(m, size, extent)
	default:
		return nil, errors.New(errors.ErrCodeValidation, "unknown fingerprint kind").
			WithDetail("kind=" + kind.String())
	}
}

// hashString is the common FNV-1a hash over an encoded structural feature.
func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
