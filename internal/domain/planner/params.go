package planner

import (
	"github.com/phrazzld/studyplan/internal/domain"
)

// Params defines all configurable parameters for the planning engine
type Params struct {
	// Priority weights per difficulty; an unknown or empty difficulty uses
	// the medium weight.
	DifficultyWeights map[domain.Difficulty]float64
	// DifficultyFactor scales the weight difference in the priority comparator.
	DifficultyFactor float64

	// Shortest study session the allocator will emit, in hours.
	MinSessionHours float64
	// Budget used for subjects configured with no daily hours.
	DefaultDailyHours float64

	// Spaced repetition
	ReviewOffsets  []int
	ReviewFraction float64
	MinReviewHours float64

	// Recommendation thresholds
	BurnoutHoursPerDay   float64
	LowHoursPerDay       float64
	RevisionWindowDays   int
	FoundationWindowDays int
	LaggingProgress      float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	EasyWeight   float64
	MediumWeight float64
	HardWeight   float64

	MinSessionHours   float64
	DefaultDailyHours float64

	ReviewOffsets  []int
	ReviewFraction float64
	MinReviewHours float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		DifficultyWeights: map[domain.Difficulty]float64{
			domain.DifficultyEasy:   1,
			domain.DifficultyMedium: 1.5,
			domain.DifficultyHard:   2,
		},
		DifficultyFactor: 2,

		MinSessionHours:   0.5,
		DefaultDailyHours: 2,

		ReviewOffsets:  []int{1, 3, 7, 14, 30},
		ReviewFraction: 0.10,
		MinReviewHours: 0.25,

		BurnoutHoursPerDay:   8,
		LowHoursPerDay:       2,
		RevisionWindowDays:   14,
		FoundationWindowDays: 60,
		LaggingProgress:      30,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero values keep the defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.EasyWeight > 0 {
		params.DifficultyWeights[domain.DifficultyEasy] = config.EasyWeight
	}
	if config.MediumWeight > 0 {
		params.DifficultyWeights[domain.DifficultyMedium] = config.MediumWeight
	}
	if config.HardWeight > 0 {
		params.DifficultyWeights[domain.DifficultyHard] = config.HardWeight
	}

	if config.MinSessionHours > 0 {
		params.MinSessionHours = config.MinSessionHours
	}
	if config.DefaultDailyHours > 0 {
		params.DefaultDailyHours = config.DefaultDailyHours
	}

	if len(config.ReviewOffsets) > 0 {
		params.ReviewOffsets = append([]int{}, config.ReviewOffsets...)
	}
	if config.ReviewFraction > 0 {
		params.ReviewFraction = config.ReviewFraction
	}
	if config.MinReviewHours > 0 {
		params.MinReviewHours = config.MinReviewHours
	}

	return params
}

// difficultyWeight returns the weight for d, defaulting to medium.
func (p *Params) difficultyWeight(d domain.Difficulty) float64 {
	if w, ok := p.DifficultyWeights[d]; ok {
		return w
	}
	return p.DifficultyWeights[domain.DifficultyMedium]
}
