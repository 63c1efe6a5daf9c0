package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	s := New("T", "run-1")
	s.Case("c1").Verdict = VerdictPass
	s.Case("c2").Verdict = VerdictPass
	s.Case("c3").Verdict = VerdictFail
	s.Case("c4").Verdict = Verdict("corrupt")

	keys := []string{"c1", "c2", "c3", "c4", "c5", "c6"}
	sum := Summarize(s, keys)

	assert.Equal(t, 2, sum[VerdictPass])
	assert.Equal(t, 1, sum[VerdictFail])
	assert.Equal(t, 0, sum[VerdictBlocked])
	assert.Equal(t, 0, sum[VerdictSkipped])
	assert.Equal(t, 3, sum[VerdictNotSet], "untouched and invalid verdicts count as not set")
	assert.Equal(t, len(keys), sum.Total())
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(New("T", "run-1"), nil)
	assert.Equal(t, 0, sum.Total())
	for _, v := range VerdictOrder {
		_, ok := sum[v]
		assert.True(t, ok, "every verdict bucket is present, %s missing", v)
	}
}
