package theatre

import "fmt"

// Default tariff. Amounts are minor currency units.
const (
	TragedyBaseAmount                int64 = 40000
	TragedyAudienceThreshold               = 30
	TragedyOverBaseCapacityPerPerson int64 = 1000

	ComedyBaseAmount                int64 = 30000
	ComedyAudienceThreshold               = 20
	ComedyOverBaseCapacityAmount    int64 = 10000
	ComedyOverBaseCapacityPerPerson int64 = 500
	ComedyAmountPerAudience         int64 = 300

	BaseVolumeCreditThreshold = 30
	ComedyExtraVolumeFactor   = 5

	// PercentFactor converts minor units to display units.
	PercentFactor = 100
)

// Rules is the tariff applied by the pricing engine.
type Rules struct {
	TragedyBaseAmount                int64
	TragedyAudienceThreshold         int
	TragedyOverBaseCapacityPerPerson int64

	ComedyBaseAmount                int64
	ComedyAudienceThreshold         int
	ComedyOverBaseCapacityAmount    int64
	ComedyOverBaseCapacityPerPerson int64
	ComedyAmountPerAudience         int64

	BaseVolumeCreditThreshold int
	ComedyExtraVolumeFactor   int
}

// DefaultRules returns the standard tariff.
func DefaultRules() Rules {
	return Rules{
		TragedyBaseAmount:                TragedyBaseAmount,
		TragedyAudienceThreshold:         TragedyAudienceThreshold,
		TragedyOverBaseCapacityPerPerson: TragedyOverBaseCapacityPerPerson,
		ComedyBaseAmount:                 ComedyBaseAmount,
		ComedyAudienceThreshold:          ComedyAudienceThreshold,
		ComedyOverBaseCapacityAmount:     ComedyOverBaseCapacityAmount,
		ComedyOverBaseCapacityPerPerson:  ComedyOverBaseCapacityPerPerson,
		ComedyAmountPerAudience:          ComedyAmountPerAudience,
		BaseVolumeCreditThreshold:        BaseVolumeCreditThreshold,
		ComedyExtraVolumeFactor:          ComedyExtraVolumeFactor,
	}
}

// Validate checks that the tariff can be applied.
func (r Rules) Validate() error {
	if r.ComedyExtraVolumeFactor <= 0 {
		return fmt.Errorf("%w: comedy extra volume factor must be positive", ErrInvalidRules)
	}
	if r.TragedyBaseAmount <= 0 || r.ComedyBaseAmount <= 0 {
		return fmt.Errorf("%w: base amounts must be positive", ErrInvalidRules)
	}
	amounts := []int64{
		r.TragedyBaseAmount,
		r.TragedyOverBaseCapacityPerPerson,
		r.ComedyBaseAmount,
		r.ComedyOverBaseCapacityAmount,
		r.ComedyOverBaseCapacityPerPerson,
		r.ComedyAmountPerAudience,
	}
	for _, amount := range amounts {
		if amount < 0 {
			return fmt.Errorf("%w: negative amount %d", ErrInvalidRules, amount)
		}
	}
	if r.TragedyAudienceThreshold < 0 || r.ComedyAudienceThreshold < 0 || r.BaseVolumeCreditThreshold < 0 {
		return fmt.Errorf("%w: negative threshold", ErrInvalidRules)
	}
	return nil
}

// Amount prices a performance with the default tariff.
func Amount(perf Performance, play Play) (int64, error) {
	return DefaultRules().Amount(perf, play)
}

// VolumeCredits computes loyalty credits with the default tariff.
func VolumeCredits(perf Performance, play Play) int {
	return DefaultRules().VolumeCredits(perf, play)
}

// Amount returns the price of a performance in minor currency units.
// Genres without a pricing strategy fail with ErrUnknownPlayType.
func (r Rules) Amount(perf Performance, play Play) (int64, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if perf.Audience < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeAudience, perf.Audience)
	}
	switch play.Type {
	case GenreTragedy:
		return r.tragedyAmount(perf.Audience), nil
	case GenreComedy:
		return r.comedyAmount(perf.Audience), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlayType, string(play.Type))
	}
}

func (r Rules) tragedyAmount(audience int) int64 {
	amount := r.TragedyBaseAmount
	if audience > r.TragedyAudienceThreshold {
		amount += r.TragedyOverBaseCapacityPerPerson * int64(audience-r.TragedyAudienceThreshold)
	}
	return amount
}

func (r Rules) comedyAmount(audience int) int64 {
	amount := r.ComedyBaseAmount
	if audience > r.ComedyAudienceThreshold {
		amount += r.ComedyOverBaseCapacityAmount +
			r.ComedyOverBaseCapacityPerPerson*int64(audience-r.ComedyAudienceThreshold)
	}
	// Surcharge covers every seat, not only the excess.
	amount += r.ComedyAmountPerAudience * int64(audience)
	return amount
}

// VolumeCredits returns the loyalty credits earned by a performance.
// Only comedies earn the extra bonus; any other genre, known or not,
// gets the base credits. The rules must pass Validate; a zero comedy
// factor panics rather than dropping the bonus.
func (r Rules) VolumeCredits(perf Performance, play Play) int {
	credits := max(perf.Audience-r.BaseVolumeCreditThreshold, 0)
	if play.Type == GenreComedy {
		credits += perf.Audience / r.ComedyExtraVolumeFactor
	}
	return credits
}
