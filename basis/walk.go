// Treatment-walk helpers: reversal, lexicographic comparison and Booth's
// minimal-rotation algorithm, used to canonicalize fundamental cycles.
package basis

import (
	"strings"

	"netmeta/network"
)

// reverseWalk returns a new slice with the elements of w in reverse order.
func reverseWalk(w []network.Treatment) []network.Treatment {
	out := make([]network.Treatment, len(w))
	for i := range w {
		out[i] = w[len(w)-1-i]
	}
	return out
}

// compareWalks lexicographically compares two equal-length walks.
// Returns -1 if a < b, 0 if equal, +1 if a > b.
func compareWalks(a, b []network.Treatment) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// joinSig concatenates the walk's treatments with commas into one signature.
func joinSig(w []network.Treatment) string {
	parts := make([]string, len(w))
	for i, t := range w {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

// minimalRotation implements Booth's algorithm: the lexicographically
// minimal rotation of w in O(n) time.
//
//  1. Duplicate the sequence to length 2n.
//  2. Maintain failure links f initialized to -1.
//  3. Track candidate k = 0; for j from 1 to 2n-1, adjust k by comparisons.
//  4. Extract the rotation of length n starting at k.
func minimalRotation(w []network.Treatment) []network.Treatment {
	doubled := append(append([]network.Treatment(nil), w...), w...)
	n := len(w)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else {
			f[j-k] = i + 1
		}
	}
	res := make([]network.Treatment, n)
	copy(res, doubled[k:k+n])
	return res
}
