package domain

// Difficulty is the self-assessed difficulty of a topic.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// Topic is a unit of study content owned by a Subject.
type Topic struct {
	ID             string     `json:"id"              yaml:"id"`
	Title          string     `json:"title"           yaml:"title"`
	EstimatedHours float64    `json:"estimated_hours" yaml:"estimated_hours"`
	Difficulty     Difficulty `json:"difficulty"      yaml:"difficulty"`
	Completed      bool       `json:"completed"       yaml:"completed"`
	Progress       int        `json:"progress"        yaml:"progress"` // 0-100
	References     []string   `json:"references,omitempty" yaml:"references,omitempty"`
	Notes          string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// RemainingHours returns the unfinished share of the estimate.
// Progress outside 0-100 is clamped.
func (t Topic) RemainingHours() float64 {
	progress := t.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return t.EstimatedHours * float64(100-progress) / 100
}

// Validate checks the fields a store must reject.
func (t *Topic) Validate() error {
	if t.Difficulty != "" && !t.Difficulty.Valid() {
		return ErrInvalidDifficulty
	}
	if t.Progress < 0 || t.Progress > 100 {
		return ErrInvalidProgress
	}
	if t.EstimatedHours < 0 {
		return ErrValidation
	}
	return nil
}
