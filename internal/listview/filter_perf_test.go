package listview

import (
	"sort"
	"testing"
	"time"

	"github.com/jask/adminui/internal/fixtures"
)

func TestFilterAndPage10kP95(t *testing.T) {
	if testing.Short() {
		t.Skip("perf check")
	}
	store := fixtures.Members(10_000, 42)
	runs := 60
	durations := make([]time.Duration, 0, runs)
	terms := []string{"kumar", "admin", "mailinator", "zzz", ""}

	for i := 0; i < runs; i++ {
		start := time.Now()
		rows := Filter(store, terms[i%len(terms)])
		_ = Page(rows, 3, DefaultPageSize)
		durations = append(durations, time.Since(start))
	}

	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	p95 := durations[int(float64(len(durations)-1)*0.95)]
	if p95 > 100*time.Millisecond {
		t.Fatalf("filter+page p95=%s exceeds 100ms target", p95)
	}
}

func BenchmarkSessionSearch(b *testing.B) {
	s := NewSession(Options{PreserveEdits: true})
	_ = s.BeginLoad()
	_ = s.Loaded(fixtures.Members(5_000, 42))
	s.EditRole("10")
	s.DeleteOne("20")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SetSearch("kumar")
		s.SetSearch("")
	}
}
