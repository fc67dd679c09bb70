package shamir

import (
	"errors"
	"math/big"
)

// ErrNoAgreement indicates that no k-subset produced an integer constant.
var ErrNoAgreement = errors.New("no subset of shares produced an integer constant")

// Agreement summarises InterpolateAtZero over many k-subsets of a share set.
type Agreement struct {
	// Secret is the constant produced by the most subsets.
	Secret *big.Int

	// Votes is the number of subsets that produced Secret.
	Votes int

	// Tried is the number of subsets evaluated.
	Tried int

	// Failed counts subsets rejected as singular or non-integer.
	Failed int

	// Distinct is the number of different integer constants seen.
	Distinct int

	// Exhaustive is false when limit stopped the search before every
	// k-subset was evaluated.
	Exhaustive bool

	// Suspects holds indices into the input of shares that were evaluated in
	// at least one subset but never in a subset producing Secret. It is empty
	// when no constant won more than one subset.
	Suspects []int

	// Untested holds indices of shares that no evaluated subset contained.
	Untested []int
}

// Unanimous reports whether every evaluated subset agreed on Secret.
func (a *Agreement) Unanimous() bool {
	return a.Votes == a.Tried
}

// Consensus runs InterpolateAtZero over k-subsets of shares in
// lexicographic order of indices, keeping the input order inside each subset,
// and stops after limit subsets (limit <= 0 means every subset).
// Ties between constants go to the one seen first.
func Consensus(shares []Share, k int, limit int) (*Agreement, error) {
	if k < 1 {
		return nil, ErrInvalidThreshold
	}
	if len(shares) < k {
		return nil, &InsufficientSharesError{Have: len(shares), Threshold: k}
	}

	type tally struct {
		secret  *big.Int
		votes   int
		members []bool
	}

	var (
		order   []string
		tallies = make(map[string]*tally)
		tested  = make([]bool, len(shares))
		lastErr error
		result  = &Agreement{Exhaustive: true}
		idx     = firstCombination(k)
		subset  = make([]Share, k)
	)

	for ok := true; ok; ok = nextCombination(idx, len(shares)) {
		if limit > 0 && result.Tried >= limit {
			result.Exhaustive = false
			break
		}
		result.Tried++

		for i, at := range idx {
			subset[i] = shares[at]
			tested[at] = true
		}

		secret, err := InterpolateAtZero(subset, k)
		if err != nil {
			if errors.Is(err, ErrSingular) || errors.Is(err, ErrNonInteger) {
				result.Failed++
				lastErr = err
				continue
			}
			return nil, err
		}

		key := secret.String()
		t, seen := tallies[key]
		if !seen {
			t = &tally{secret: secret, members: make([]bool, len(shares))}
			tallies[key] = t
			order = append(order, key)
		}
		t.votes++
		for _, at := range idx {
			t.members[at] = true
		}
	}

	if len(order) == 0 {
		if lastErr == nil {
			return nil, ErrNoAgreement
		}
		return nil, errors.Join(ErrNoAgreement, lastErr)
	}

	best := tallies[order[0]]
	for _, key := range order[1:] {
		if t := tallies[key]; t.votes > best.votes {
			best = t
		}
	}

	result.Secret = best.secret
	result.Votes = best.votes
	result.Distinct = len(order)

	// A single vote cannot tell an honest subset from a corrupted one.
	blame := best.votes > 1
	for i, member := range best.members {
		switch {
		case !tested[i]:
			result.Untested = append(result.Untested, i)
		case blame && !member:
			result.Suspects = append(result.Suspects, i)
		}
	}

	return result, nil
}

func firstCombination(k int) []int {
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// nextCombination advances idx to the next k-combination of [0, n) and
// reports false once idx was the last one.
func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}
