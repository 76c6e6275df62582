package rng

import (
	"testing"
	"time"
)

func TestSeedCodeRoundTrip(t *testing.T) {
	seeds := []uint32{0, 1, 35, 36, 1295, 46656, 123456789, 0x7FFFFFFF, 0xFFFFFFFE, 0xFFFFFFFF}

	r := New(31337)
	for i := 0; i < 500; i++ {
		seeds = append(seeds, uint32(r.Frac()*4294967296.0))
	}

	for _, s := range seeds {
		code := SeedToCode(s)
		if got := CodeToSeed(code); got != s {
			t.Errorf("CodeToSeed(SeedToCode(%d)) = %d (code %q)", s, got, code)
		}
	}
}

func TestSeedToCodeFormat(t *testing.T) {
	tests := []struct {
		seed uint32
		want string
	}{
		{0, "0000"},
		{35, "000Z"},
		{36, "0010"},
		{0xFFFFFFFF, "1Z141Z3"},
	}

	for _, tc := range tests {
		if got := SeedToCode(tc.seed); got != tc.want {
			t.Errorf("SeedToCode(%d) = %q, expected %q", tc.seed, got, tc.want)
		}
	}
}

func TestCodeToSeedTolerant(t *testing.T) {
	if CodeToSeed("abc123") != CodeToSeed("ABC123") {
		t.Error("decoding should be case-insensitive")
	}
	if CodeToSeed("A-B C") != CodeToSeed("ABC") {
		t.Error("decoding should ignore separators")
	}
	if CodeToSeed("") != 0 {
		t.Error("empty code should decode to 0")
	}
	if CodeToSeed("!!!") != 0 {
		t.Error("code without digits should decode to 0")
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  abc-123 "); got != "ABC123" {
		t.Errorf("NormalizeCode = %q, expected ABC123", got)
	}
}

func TestDailySeedSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 0, 0, 1, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC)

	if DailySeed(morning) != DailySeed(evening) {
		t.Error("same UTC day should give the same seed")
	}

	// 14 March 23:30 in UTC-5 is 15 March in UTC
	est := time.FixedZone("EST", -5*3600)
	lateLocal := time.Date(2026, 3, 14, 23, 30, 0, 0, est)
	if DailySeed(lateLocal) != DailySeed(time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)) {
		t.Error("daily seed should follow the UTC calendar day")
	}
}

func TestDailySeedDiffersAcrossDays(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	seen := make(map[uint32]string)

	for i := 0; i < 366; i++ {
		day := start.AddDate(0, 0, i)
		s := DailySeed(day)
		if prev, ok := seen[s]; ok {
			t.Fatalf("days %s and %s share seed %d", prev, day.Format("2006-01-02"), s)
		}
		seen[s] = day.Format("2006-01-02")
	}
}

func TestDeriveSeed(t *testing.T) {
	if DeriveSeed(100, 1) != DeriveSeed(100, 1) {
		t.Error("DeriveSeed should be deterministic")
	}

	seen := map[uint32]bool{100: true}
	cur := uint32(100)
	for attempt := 1; attempt <= 20; attempt++ {
		cur = DeriveSeed(cur, attempt)
		if seen[cur] {
			t.Fatalf("attempt %d repeated seed %d", attempt, cur)
		}
		seen[cur] = true
	}
}
