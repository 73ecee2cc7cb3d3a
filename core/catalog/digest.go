package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"storage-planner/core/types"
)

// ContentHash is a SHA-256 digest of the pricing content of a catalog
type ContentHash [32]byte

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters
func (h ContentHash) Short() string {
	return h.Hex()[:12]
}

// String implements Stringer
func (h ContentHash) String() string {
	return "sha256:" + h.Hex()
}

// computeDigest hashes a canonical rendering of the catalog. Formatting,
// comments and attribute order in the source do not affect the result;
// every value that can change a price or a feature list does.
func computeDigest(c *Catalog) ContentHash {
	h := sha256.New()
	fmt.Fprintf(h, "version=%s\ncurrency=%s\n", c.version, c.currency)

	for _, period := range types.BillingPeriods() {
		ps, ok := c.periods[period]
		if !ok {
			continue
		}
		fmt.Fprintf(h, "period=%s\n", period)
		for _, t := range ps.Tiers {
			fmt.Fprintf(h, "tier=%s|%s|%s|%s|%s\n", t.Key, t.Name, t.MonthlyCost, t.CapacityGB, t.Seats)
			writeList(h, "feature", t.Features)
		}
		for _, b := range ps.Schedule.Bands() {
			fmt.Fprintf(h, "band=%s|%s\n", b.ThresholdGB, b.RatePerGB)
		}
		fmt.Fprintf(h, "default_rate=%s\n", ps.Schedule.DefaultRate())
	}

	fmt.Fprintf(h, "enterprise=%s|%s\n", c.enterprise.Key, c.enterprise.Name)
	writeList(h, "feature", c.enterprise.Features)

	var out ContentHash
	copy(out[:], h.Sum(nil))
	return out
}

func writeList(w io.Writer, label string, items []string) {
	for _, item := range items {
		fmt.Fprintf(w, "%s=%s\n", label, strings.ReplaceAll(item, "\n", `\n`))
	}
}
