package plan

// Difficulty is a totally ordered level. The ordering drives the one-step
// rule for difficulty adaptations, so it lives in one explicit list rather
// than in string comparisons scattered around the code.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

var difficultyOrder = []Difficulty{
	DifficultyEasy,
	DifficultyMedium,
	DifficultyHard,
	DifficultyExtreme,
}

// AllDifficulties returns every level in ascending order.
func AllDifficulties() []Difficulty {
	out := make([]Difficulty, len(difficultyOrder))
	copy(out, difficultyOrder)
	return out
}

// IsValid returns true if the level is known.
func (d Difficulty) IsValid() bool {
	return d.OrderIndex() >= 0
}

// OrderIndex returns the position of the level in the ascending order,
// or -1 for an unknown level.
func (d Difficulty) OrderIndex() int {
	for i, level := range difficultyOrder {
		if level == d {
			return i
		}
	}
	return -1
}

// StepsTo returns the absolute distance between two levels on the ordering.
// Either side being unknown yields -1.
func (d Difficulty) StepsTo(other Difficulty) int {
	from := d.OrderIndex()
	to := other.OrderIndex()
	if from < 0 || to < 0 {
		return -1
	}
	if from > to {
		return from - to
	}
	return to - from
}

// String returns the string representation of the level.
func (d Difficulty) String() string {
	return string(d)
}
