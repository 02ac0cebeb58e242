package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const InitialVersion = "1.0"

// NextVersion bumps the minor component of a "major.minor" label.
// Unparseable labels restart at the first revision.
func NextVersion(v string) string {
	head := strings.TrimSpace(v)
	if i := strings.IndexByte(head, ' '); i >= 0 {
		head = head[:i]
	}
	major, minor, ok := strings.Cut(head, ".")
	if !ok {
		return "1.1"
	}
	ma, err1 := strconv.Atoi(major)
	mi, err2 := strconv.Atoi(minor)
	if err1 != nil || err2 != nil || ma < 0 || mi < 0 {
		return "1.1"
	}
	return fmt.Sprintf("%d.%d", ma, mi+1)
}
