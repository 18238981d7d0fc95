package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/types"
)

// QuizOptionCount is the number of answer options per question
const QuizOptionCount = 4

// QuizQuestion is one parsed multiple-choice question generated for a topic
type QuizQuestion struct {
	Question    string
	Options     []string
	Correct     int // index into Options
	Explanation string
	Difficulty  int
}

// Validate checks that the question is complete and the answer index is
// within range
func (q *QuizQuestion) Validate() error {
	if q.Question == "" {
		return goerr.Wrap(types.ErrValidation, "quiz question text is empty")
	}
	if len(q.Options) != QuizOptionCount {
		return goerr.Wrap(types.ErrValidation, "quiz question must have exactly 4 options",
			goerr.V("options", len(q.Options)))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return goerr.Wrap(types.ErrValidation, "quiz correct answer index out of range",
			goerr.V("correct", q.Correct))
	}
	return nil
}
