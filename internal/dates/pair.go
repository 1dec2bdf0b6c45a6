package dates

import (
	"sort"
	"time"
)

// Resolved is a fully dated candidate entering pair selection.
type Resolved struct {
	Date time.Time
	// ExplicitYear marks dates whose source text carried a four-digit year.
	ExplicitYear bool
}

const (
	minStayNights = 1
	maxStayNights = 30
)

// SelectBestPair picks the most plausible (check-in, check-out) pair out of
// every date-like token found in a message. Pairs must be 1-30 nights apart.
// Scoring favors explicit-year matches, differing days of month, same-year
// stays (or short New-Year-spanning ones) and short stays; ties prefer the
// later check-in year. With fewer than two distinct dates, or when every
// pair falls outside the separation band, there is no pair.
func SelectBestPair(cands []Resolved) (checkIn, checkOut time.Time, ok bool) {
	dates := dedupe(cands)
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, false
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date.Before(dates[j].Date) })

	bestScore := -1
	var best [2]Resolved
	for i := 0; i < len(dates); i++ {
		for j := i + 1; j < len(dates); j++ {
			in, out := dates[i], dates[j]
			nights := daysBetween(in.Date, out.Date)
			if nights < minStayNights || nights > maxStayNights {
				continue
			}
			score := scorePair(in, out, nights)
			if score > bestScore ||
				(score == bestScore && in.Date.Year() > best[0].Date.Year()) {
				bestScore = score
				best = [2]Resolved{in, out}
			}
		}
	}

	if bestScore < 0 {
		return time.Time{}, time.Time{}, false
	}
	return best[0].Date, best[1].Date, true
}

func scorePair(in, out Resolved, nights int) int {
	score := 0
	if in.ExplicitYear && out.ExplicitYear {
		score += 20
	}
	if in.Date.Day() != out.Date.Day() {
		score += 10
	}
	switch {
	case in.Date.Year() == out.Date.Year():
		score += 3
	case absInt(in.Date.Year()-out.Date.Year()) == 1 && nights <= 14:
		// Short stays crossing New Year are common; favor them slightly
		// over forcing both dates into one year.
		score += 4
	}
	switch {
	case nights >= 2 && nights <= 7:
		score += 3
	case nights >= 8 && nights <= 14:
		score += 2
	}
	return score
}

func dedupe(cands []Resolved) []Resolved {
	seen := make(map[time.Time]int, len(cands))
	out := make([]Resolved, 0, len(cands))
	for _, c := range cands {
		d := dateOnly(c.Date)
		if idx, dup := seen[d]; dup {
			// An explicit-year duplicate upgrades the kept entry.
			if c.ExplicitYear {
				out[idx].ExplicitYear = true
			}
			continue
		}
		seen[d] = len(out)
		out = append(out, Resolved{Date: d, ExplicitYear: c.ExplicitYear})
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
