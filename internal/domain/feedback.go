package domain

// Feedback is the learner's verdict on a flipped card.
type Feedback string

// Possible feedback values
const (
	FeedbackEasy Feedback = "easy"
	FeedbackHard Feedback = "hard"
)

// Valid reports whether f is a recognised feedback kind.
func (f Feedback) Valid() bool {
	return f == FeedbackEasy || f == FeedbackHard
}
