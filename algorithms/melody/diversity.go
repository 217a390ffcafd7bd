package melody

import (
	"errors"
	"math"
)

// ErrNotCounted is returned when a statistic is requested before a count
// pass has completed.
var ErrNotCounted = errors.New("melody: n-gram table not yet computed: call Count first")

// DiversityStats bundles the six lexical-diversity statistics of one
// n-gram table.
type DiversityStats struct {
	YulesK           float64 `json:"yules_k"`
	SimpsonsD        float64 `json:"simpsons_d"`
	SichelsS         float64 `json:"sichels_s"`
	HonoresH         float64 `json:"honores_h"`
	MeanEntropy      float64 `json:"mean_entropy"`
	MeanProductivity float64 `json:"mean_productivity"`
}

// The statistics below reproduce the reference model exactly, including
// its 1/L normalization by the number of distinct n-gram lengths in the
// table. With a mixed-length table (CountAll) that divisor makes each
// value an average over lengths by convention, not a per-length
// decomposition. Degenerate denominators return a literal 0.0 throughout;
// no statistic ever yields NaN or an error for valid tables.

// YulesK returns Yule's K, scaled by 1000 as in the reference model.
// Returns 0.0 for an empty table.
func (nc *NGramCounter) YulesK() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	n := nc.TotalTokens()
	if n == 0 {
		return 0.0, nil
	}
	freqOfFreq := make(map[int]int)
	for _, c := range nc.counts {
		freqOfFreq[c]++
	}
	sum := 0.0
	for m, f := range freqOfFreq {
		sum += float64(f) * float64(m) * float64(m)
	}
	nf := float64(n)
	return 1000.0 * (sum - nf) / (nf * nf) / float64(nc.LengthCount()), nil
}

// SimpsonsD returns Simpson's diversity index D. Returns 0.0 when the
// table holds one token or fewer.
func (nc *NGramCounter) SimpsonsD() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	n := nc.TotalTokens()
	if n <= 1 {
		return 0.0, nil
	}
	sum := 0.0
	for _, c := range nc.counts {
		sum += float64(c) * float64(c-1)
	}
	nf := float64(n)
	return sum / (nf * (nf - 1)) / float64(nc.LengthCount()), nil
}

// SichelsS returns Sichel's S, the proportion of types occurring exactly
// twice. Returns 0.0 for an empty table.
func (nc *NGramCounter) SichelsS() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	v := nc.DistinctTypes()
	if nc.TotalTokens() == 0 || v == 0 {
		return 0.0, nil
	}
	dis := 0
	for _, c := range nc.counts {
		if c == 2 {
			dis++
		}
	}
	return float64(dis) / float64(v) / float64(nc.LengthCount()), nil
}

// HonoresH returns Honoré's H. When there are no types, no hapax legomena,
// or every type is a hapax, the statistic is degenerate and 0.0 is
// returned; that guard is the one consistent sentinel used here, never a
// NaN.
func (nc *NGramCounter) HonoresH() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	v := nc.DistinctTypes()
	hapax := nc.hapaxCount()
	if v == 0 || hapax == 0 || hapax == v {
		return 0.0, nil
	}
	n := float64(nc.TotalTokens())
	return 100.0 * math.Log(n) / (1.01 - float64(hapax)/float64(v)), nil
}

// MeanEntropy returns the Shannon entropy of the type distribution,
// normalized by log2(N). Returns 0.0 when the table holds one token or
// fewer.
func (nc *NGramCounter) MeanEntropy() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	n := nc.TotalTokens()
	if n <= 1 {
		return 0.0, nil
	}
	nf := float64(n)
	entropy := 0.0
	for _, c := range nc.counts {
		p := float64(c) / nf
		entropy -= p * math.Log2(p)
	}
	return entropy / math.Log2(nf), nil
}

// MeanProductivity returns the hapax proportion V1/N. Returns 0.0 for an
// empty table.
func (nc *NGramCounter) MeanProductivity() (float64, error) {
	if !nc.counted {
		return 0, ErrNotCounted
	}
	n := nc.TotalTokens()
	if n == 0 {
		return 0.0, nil
	}
	return float64(nc.hapaxCount()) / float64(n), nil
}

// Statistics computes all six diversity statistics in one call.
func (nc *NGramCounter) Statistics() (*DiversityStats, error) {
	if !nc.counted {
		return nil, ErrNotCounted
	}
	yules, _ := nc.YulesK()
	simpsons, _ := nc.SimpsonsD()
	sichels, _ := nc.SichelsS()
	honores, _ := nc.HonoresH()
	entropy, _ := nc.MeanEntropy()
	productivity, _ := nc.MeanProductivity()
	return &DiversityStats{
		YulesK:           yules,
		SimpsonsD:        simpsons,
		SichelsS:         sichels,
		HonoresH:         honores,
		MeanEntropy:      entropy,
		MeanProductivity: productivity,
	}, nil
}

func (nc *NGramCounter) hapaxCount() int {
	hapax := 0
	for _, c := range nc.counts {
		if c == 1 {
			hapax++
		}
	}
	return hapax
}
