package quiz

import "testing"

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct{ score, total, want int }{
		{0, 0, 0},
		{1, 2, 50},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := Percentage(tc.score, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestBandThresholdsAndMessages(t *testing.T) {
	cases := []struct {
		pct  int
		band Band
		msg  string
	}{
		{100, BandMastered, "Flawless! You've mastered English context."},
		{80, BandMastered, "Excellent work! Your sheep-skills are top-tier."},
		{79, BandProgressing, "Good progress. A bit more study will make you a pro."},
		{50, BandProgressing, "Good progress. A bit more study will make you a pro."},
		{49, BandKeepLearning, "Keep learning! The Academy modules have all the answers."},
	}
	for _, tc := range cases {
		b := BandFor(tc.pct)
		if b != tc.band {
			t.Fatalf("BandFor(%d) = %d, want %d", tc.pct, b, tc.band)
		}
		if got := b.Message(tc.pct); got != tc.msg {
			t.Fatalf("message for %d: got %q", tc.pct, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	if Normalize("  In Front Of \t") != "in front of" {
		t.Fatalf("unexpected normalize result %q", Normalize("  In Front Of \t"))
	}
}
