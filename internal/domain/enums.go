package domain

// Difficulty is the closed set of difficulty labels used by categories'
// directory layout, topics, lessons, and quiz questions.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// Difficulties lists all valid difficulty labels in ascending order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}
}

// QuestionKind distinguishes single-choice quiz questions from free-form ones.
type QuestionKind string

const (
	QuestionKindSingleChoice QuestionKind = "single_choice"
	QuestionKindFreeForm     QuestionKind = "free_form"
)

func (k QuestionKind) String() string { return string(k) }

func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionKindSingleChoice, QuestionKindFreeForm:
		return true
	}
	return false
}

// ProgressStatus is the state of a user's progress on a lesson.
type ProgressStatus string

const (
	ProgressStatusStarted   ProgressStatus = "started"
	ProgressStatusCompleted ProgressStatus = "completed"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressStatusStarted, ProgressStatusCompleted:
		return true
	}
	return false
}
