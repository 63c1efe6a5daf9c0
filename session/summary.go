package session

// Summary is the verdict distribution across a case list. Every known
// verdict has an entry, so counts always sum to the case count.
type Summary map[Verdict]int

// Summarize derives the distribution for the given case keys. Cases
// without a state record count as not_set. Derived view only, never
// persisted.
func Summarize(s *Session, caseKeys []string) Summary {
	sum := Summary{
		VerdictPass:    0,
		VerdictFail:    0,
		VerdictBlocked: 0,
		VerdictSkipped: 0,
		VerdictNotSet:  0,
	}
	for _, key := range caseKeys {
		v := VerdictNotSet
		if cs, ok := s.CaseIfSet(key); ok && cs.Verdict.Valid() {
			v = cs.Verdict
		}
		sum[v]++
	}
	return sum
}

// Total returns the number of cases covered by the summary.
func (s Summary) Total() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}
