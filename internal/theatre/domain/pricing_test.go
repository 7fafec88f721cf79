package theatre

import (
	"errors"
	"testing"
)

func TestAmount_Tragedy(t *testing.T) {
	play := Play{Name: "Hamlet", Type: GenreTragedy}
	cases := []struct {
		audience int
		want     int64
	}{
		{audience: 0, want: 40000},
		{audience: 30, want: 40000},
		{audience: 31, want: 41000},
		{audience: 40, want: 50000},
		{audience: 55, want: 65000},
	}
	for _, tc := range cases {
		got, err := Amount(Performance{PlayID: "hamlet", Audience: tc.audience}, play)
		if err != nil {
			t.Fatalf("audience %d: unexpected error: %v", tc.audience, err)
		}
		if got != tc.want {
			t.Fatalf("audience %d: expected %d, got %d", tc.audience, tc.want, got)
		}
	}
}

func TestAmount_TragedyAtOrBelowThresholdIsBase(t *testing.T) {
	play := Play{Name: "Othello", Type: GenreTragedy}
	for audience := 0; audience <= TragedyAudienceThreshold; audience++ {
		got, err := Amount(Performance{PlayID: "othello", Audience: audience}, play)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != TragedyBaseAmount {
			t.Fatalf("audience %d: expected base %d, got %d", audience, TragedyBaseAmount, got)
		}
	}
}

func TestAmount_TragedyStrictlyIncreasingAboveThreshold(t *testing.T) {
	play := Play{Name: "Othello", Type: GenreTragedy}
	prev := TragedyBaseAmount
	for audience := TragedyAudienceThreshold + 1; audience <= 500; audience++ {
		got, err := Amount(Performance{PlayID: "othello", Audience: audience}, play)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := TragedyBaseAmount + TragedyOverBaseCapacityPerPerson*int64(audience-TragedyAudienceThreshold)
		if got != want {
			t.Fatalf("audience %d: expected %d, got %d", audience, want, got)
		}
		if got <= prev {
			t.Fatalf("audience %d: amount %d not greater than %d", audience, got, prev)
		}
		prev = got
	}
}

func TestAmount_Comedy(t *testing.T) {
	play := Play{Name: "As You Like It", Type: GenreComedy}
	cases := []struct {
		audience int
		want     int64
	}{
		{audience: 0, want: 30000},
		{audience: 20, want: 36000},
		{audience: 21, want: 46800},
		{audience: 35, want: 58000},
	}
	for _, tc := range cases {
		got, err := Amount(Performance{PlayID: "as-like", Audience: tc.audience}, play)
		if err != nil {
			t.Fatalf("audience %d: unexpected error: %v", tc.audience, err)
		}
		if got != tc.want {
			t.Fatalf("audience %d: expected %d, got %d", tc.audience, tc.want, got)
		}
	}
}

func TestAmount_ComedyMonotonicWithSurcharge(t *testing.T) {
	play := Play{Name: "As You Like It", Type: GenreComedy}
	var prev int64
	for audience := 0; audience <= 500; audience++ {
		got, err := Amount(Performance{PlayID: "as-like", Audience: audience}, play)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got < prev {
			t.Fatalf("audience %d: amount decreased from %d to %d", audience, prev, got)
		}
		tiered := ComedyBaseAmount
		if audience > ComedyAudienceThreshold {
			tiered += ComedyOverBaseCapacityAmount + ComedyOverBaseCapacityPerPerson*int64(audience-ComedyAudienceThreshold)
		}
		if surcharge := got - tiered; surcharge != ComedyAmountPerAudience*int64(audience) {
			t.Fatalf("audience %d: expected surcharge %d, got %d", audience, ComedyAmountPerAudience*int64(audience), surcharge)
		}
		prev = got
	}
}

func TestAmount_UnknownGenreFails(t *testing.T) {
	for _, genre := range []Genre{"farce", "", "Tragedy", "history"} {
		amount, err := Amount(Performance{PlayID: "x", Audience: 10}, Play{Name: "X", Type: genre})
		if !errors.Is(err, ErrUnknownPlayType) {
			t.Fatalf("genre %q: expected ErrUnknownPlayType, got %v", genre, err)
		}
		if amount != 0 {
			t.Fatalf("genre %q: expected zero amount on failure, got %d", genre, amount)
		}
	}
}

func TestAmount_NegativeAudienceFails(t *testing.T) {
	_, err := Amount(Performance{PlayID: "hamlet", Audience: -1}, Play{Name: "Hamlet", Type: GenreTragedy})
	if !errors.Is(err, ErrNegativeAudience) {
		t.Fatalf("expected ErrNegativeAudience, got %v", err)
	}
}

func TestAmount_EveryKnownGenreIsPriced(t *testing.T) {
	for _, genre := range KnownGenres() {
		if !genre.Known() {
			t.Fatalf("genre %q listed but not known", genre)
		}
		if _, err := Amount(Performance{PlayID: "p", Audience: 42}, Play{Name: "P", Type: genre}); err != nil {
			t.Fatalf("genre %q has no pricing strategy: %v", genre, err)
		}
	}
	if Genre("farce").Known() {
		t.Fatalf("farce must not be known")
	}
}

func TestVolumeCredits(t *testing.T) {
	cases := []struct {
		name     string
		genre    Genre
		audience int
		want     int
	}{
		{name: "tragedy below threshold", genre: GenreTragedy, audience: 20, want: 0},
		{name: "tragedy at threshold", genre: GenreTragedy, audience: 30, want: 0},
		{name: "tragedy above threshold", genre: GenreTragedy, audience: 55, want: 25},
		{name: "comedy below threshold", genre: GenreComedy, audience: 12, want: 2},
		{name: "comedy above threshold", genre: GenreComedy, audience: 35, want: 12},
		{name: "comedy truncates", genre: GenreComedy, audience: 39, want: 16},
		{name: "unknown genre gets no bonus", genre: "farce", audience: 35, want: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := VolumeCredits(Performance{PlayID: "p", Audience: tc.audience}, Play{Name: "P", Type: tc.genre})
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestVolumeCredits_Formula(t *testing.T) {
	for audience := 0; audience <= 200; audience++ {
		base := max(audience-BaseVolumeCreditThreshold, 0)
		perf := Performance{PlayID: "p", Audience: audience}
		if got := VolumeCredits(perf, Play{Type: GenreTragedy}); got != base {
			t.Fatalf("tragedy audience %d: expected %d, got %d", audience, base, got)
		}
		want := base + audience/ComedyExtraVolumeFactor
		if got := VolumeCredits(perf, Play{Type: GenreComedy}); got != want {
			t.Fatalf("comedy audience %d: expected %d, got %d", audience, want, got)
		}
	}
}

func TestRules_Override(t *testing.T) {
	rules := DefaultRules()
	rules.TragedyBaseAmount = 50000
	rules.ComedyExtraVolumeFactor = 10

	amount, err := rules.Amount(Performance{PlayID: "hamlet", Audience: 10}, Play{Type: GenreTragedy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if amount != 50000 {
		t.Fatalf("expected 50000, got %d", amount)
	}
	if credits := rules.VolumeCredits(Performance{PlayID: "p", Audience: 35}, Play{Type: GenreComedy}); credits != 8 {
		t.Fatalf("expected 8 credits, got %d", credits)
	}
}

func TestRules_Validate(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}

	zeroFactor := DefaultRules()
	zeroFactor.ComedyExtraVolumeFactor = 0
	if err := zeroFactor.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}

	negative := DefaultRules()
	negative.ComedyAmountPerAudience = -1
	if err := negative.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}

	negativeThreshold := DefaultRules()
	negativeThreshold.TragedyAudienceThreshold = -5
	if err := negativeThreshold.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}
}

func TestRules_AmountRejectsInvalidRules(t *testing.T) {
	if _, err := (Rules{}).Amount(Performance{PlayID: "hamlet", Audience: 10}, Play{Type: GenreTragedy}); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules, got %v", err)
	}

	zeroBase := DefaultRules()
	zeroBase.ComedyBaseAmount = 0
	if err := zeroBase.Validate(); !errors.Is(err, ErrInvalidRules) {
		t.Fatalf("expected ErrInvalidRules for zero base amount, got %v", err)
	}
}

func TestRules_VolumeCreditsZeroFactorPanics(t *testing.T) {
	rules := DefaultRules()
	rules.ComedyExtraVolumeFactor = 0
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic instead of a dropped comedy bonus")
		}
	}()
	rules.VolumeCredits(Performance{PlayID: "as-like", Audience: 35}, Play{Type: GenreComedy})
}
