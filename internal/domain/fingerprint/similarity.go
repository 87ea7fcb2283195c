package fingerprint

import (
	"math"
	"math/bits"
	"strings"

	"github.com/turtacn/ChemDesc-Engine/pkg/errors"
)

// Metric names a similarity measure over two fingerprints.
type Metric string

const (
	MetricTanimoto Metric = "tanimoto"
	MetricDice     Metric = "dice"
	MetricCosine   Metric = "cosine"
)

// Metrics returns every supported metric in presentation order.
func Metrics() []Metric {
	return []Metric{MetricTanimoto, MetricDice, MetricCosine}
}

// IsValid reports whether the metric is one of the defined measures.
func (m Metric) IsValid() bool {
	switch m {
	case MetricTanimoto, MetricDice, MetricCosine:
		return true
	default:
		return false
	}
}

func (m Metric) String() string {
	return string(m)
}

// ParseMetric parses a metric name, case-insensitively. The empty string
// resolves to Tanimoto.
func ParseMetric(s string) (Metric, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return MetricTanimoto, nil
	}
	m := Metric(trimmed)
	if !m.IsValid() {
		return "", errors.New(errors.ErrCodeUnsupportedMetric, "unsupported similarity metric").
			WithDetail("metric=" + s)
	}
	return m, nil
}

// checkComparable rejects fingerprint pairs that differ in kind or length.
func checkComparable(a, b *Fingerprint) error {
	if a == nil || b == nil {
		return errors.New(errors.ErrCodeFingerprintMismatch, "fingerprint must not be nil")
	}
	if a.Kind != b.Kind || a.Length != b.Length {
		return errors.New(errors.ErrCodeFingerprintMismatch, "fingerprints are not comparable").
			WithDetailf("a=%s/%d b=%s/%d", a.Kind, a.Length, b.Kind, b.Length)
	}
	return nil
}

// intersection counts the bits set in both vectors.
func intersection(a, b *Fingerprint) int {
	n := 0
	for i := range a.Bits {
		n += bits.OnesCount8(a.Bits[i] & b.Bits[i])
	}
	return n
}

// Tanimoto returns |A∩B| / |A∪B|. Two empty fingerprints score 0.
func Tanimoto(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	common := intersection(a, b)
	union := a.OnBits() + b.OnBits() - common
	if union == 0 {
		return 0, nil
	}
	return float64(common) / float64(union), nil
}

// Dice returns 2|A∩B| / (|A|+|B|). Two empty fingerprints score 0.
func Dice(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	total := a.OnBits() + b.OnBits()
	if total == 0 {
		return 0, nil
	}
	return 2 * float64(intersection(a, b)) / float64(total), nil
}

// Cosine returns |A∩B| / √(|A|·|B|), the cosine of the angle between the
// two bit vectors. An empty fingerprint on either side scores 0.
func Cosine(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	if a.OnBits() == 0 || b.OnBits() == 0 {
		return 0, nil
	}
	return float64(intersection(a, b)) / math.Sqrt(float64(a.OnBits())*float64(b.OnBits())), nil
}

// Compare evaluates the named metric over two fingerprints.
func Compare(metric Metric, a, b *Fingerprint) (float64, error) {
	switch metric {
	case MetricTanimoto:
		return Tanimoto(a, b)
	case MetricDice:
		return Dice(a, b)
	case MetricCosine:
		return Cosine(a, b)
	default:
		return 0, errors.New(errors.ErrCodeUnsupportedMetric, "unsupported similarity metric").
			WithDetail("metric=" + metric.String())
	}
}
