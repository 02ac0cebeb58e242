package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// ProjectPrefix is prepended to every public project id.
const ProjectPrefix = "swot"

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewProjectID generates a human-readable project id.
// Format: "swot-12345-6789"
func NewProjectID() (string, error) {
	a, err := randInt(10000, 99999)
	if err != nil {
		return "", err
	}
	b, err := randInt(1000, 9999)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%05d-%04d", ProjectPrefix, a, b), nil
}

// NewHash returns n random uppercase base-36 characters.
func NewHash(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		v, err := randInt(0, int64(len(base36)-1))
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36[v])
	}
	return sb.String(), nil
}

func randInt(min, max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min+1))
	if err != nil {
		return 0, err
	}
	return min + n.Int64(), nil
}
