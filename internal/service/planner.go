package service

import (
	"medline_mirror/internal/listing"
)

// Plan filters the remote listing down to the work for this run: entries
// whose identifier the ledger does not know and whose filename is not
// excluded, in the listing's original order, truncated to limit entries
// (0 or negative means unbounded). Preserving remote order means repeated
// bounded runs against an unchanged listing walk strictly forward instead of
// re-sampling the same prefix.
func Plan(entries []listing.File, known map[string]struct{}, exclude *listing.ExcludeList, limit int) []listing.File {
	var plan []listing.File
	for _, f := range entries {
		if limit > 0 && len(plan) >= limit {
			break
		}
		if _, done := known[f.UniqueID]; done {
			continue
		}
		if exclude.Excluded(f.Filename) {
			continue
		}
		plan = append(plan, f)
	}
	return plan
}
