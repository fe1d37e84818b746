package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type PackageStatus string

// StatusInTransit is assigned on registration. No other transitions exist yet.
const StatusInTransit PackageStatus = "in transit"

const (
	codePrefix = "PKG-"
	codeDigits = 5
)

// Represents a single parcel tracked by the registry.
// Route is a snapshot taken at registration time and is never recomputed,
// even if the network changes afterwards.
type Package struct {
	Code          string
	Origin        City
	Destination   City
	Route         []City
	DistanceTotal float64
	Status        PackageStatus
}

// Clone returns a deep copy so callers cannot alter registry-owned routes.
func (p Package) Clone() Package {
	p.Route = append([]City(nil), p.Route...)
	return p
}

// FormatCode renders a sequence number as a fixed-width package code (7 -> "PKG-00007").
func FormatCode(seq int) string {
	return fmt.Sprintf("%s%0*d", codePrefix, codeDigits, seq)
}

// ParseCode extracts the sequence number from a package code.
func ParseCode(code string) (int, error) {
	digits, ok := strings.CutPrefix(code, codePrefix)
	if !ok || len(digits) < codeDigits || strings.IndexFunc(digits, notDigit) >= 0 {
		return 0, fmt.Errorf("parse code %q: expected %sNNNNN: %w", code, codePrefix, ErrInvalidArgument)
	}

	seq, err := strconv.Atoi(digits)
	if err != nil || seq <= 0 {
		return 0, fmt.Errorf("parse code %q: invalid sequence: %w", code, ErrInvalidArgument)
	}

	return seq, nil
}

func notDigit(r rune) bool { return r < '0' || r > '9' }
