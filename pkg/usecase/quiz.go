package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
	"github.com/edu-lab/mentor/pkg/utils/logging"
)

// Quiz generation defaults
const (
	DefaultQuizQuestions  = 5
	DefaultQuizDifficulty = 5
)

// GenerateQuiz asks the generator for multiple-choice questions about a
// topic and parses the fixed text format back into structured questions.
// Malformed blocks are skipped; zero parseable questions is an error.
func (uc *UseCases) GenerateQuiz(ctx context.Context, topic string, difficulty, numQuestions int) ([]*model.QuizQuestion, error) {
	if topic == "" {
		return nil, goerr.Wrap(types.ErrValidation, "quiz topic is empty")
	}
	if difficulty <= 0 {
		difficulty = DefaultQuizDifficulty
	}
	if difficulty > 10 {
		return nil, goerr.Wrap(types.ErrValidation, "quiz difficulty must be between 1 and 10",
			goerr.V("difficulty", difficulty))
	}
	if numQuestions <= 0 {
		numQuestions = DefaultQuizQuestions
	}

	raw, err := uc.generator.Generate(ctx, buildQuizPrompt(topic, difficulty, numQuestions))
	if err != nil {
		return nil, err
	}

	questions, skipped := parseQuizResponse(raw, difficulty)
	if skipped > 0 {
		logging.From(ctx).Warn("skipped malformed quiz blocks",
			"topic", topic, "skipped", skipped)
	}
	if len(questions) == 0 {
		return nil, goerr.Wrap(types.ErrGeneration, "no parseable questions in quiz response",
			goerr.V("topic", topic))
	}

	return questions, nil
}

func buildQuizPrompt(topic string, difficulty, numQuestions int) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Generate %d multiple choice questions about %s in C programming.\n", numQuestions, topic)
	fmt.Fprintf(&sb, "Difficulty level: %d/10\n\n", difficulty)
	sb.WriteString("Format each question as:\n")
	sb.WriteString("Q: [question]\n")
	sb.WriteString("A) [option 1]\n")
	sb.WriteString("B) [option 2]\n")
	sb.WriteString("C) [option 3]\n")
	sb.WriteString("D) [option 4]\n")
	sb.WriteString("Correct: [A/B/C/D]\n")
	sb.WriteString("Explanation: [brief explanation]\n\n")
	sb.WriteString("---\n")

	return sb.String()
}

// parseQuizResponse parses blocks separated by "---" lines. A valid block
// carries a question, four options A)..D), a correct letter, and an
// explanation. Returns the parsed questions and the number of skipped
// blocks.
func parseQuizResponse(raw string, difficulty int) ([]*model.QuizQuestion, int) {
	var questions []*model.QuizQuestion
	skipped := 0

	for _, block := range strings.Split(raw, "---") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		q, ok := parseQuizBlock(block, difficulty)
		if !ok {
			skipped++
			continue
		}
		questions = append(questions, q)
	}

	return questions, skipped
}

func parseQuizBlock(block string, difficulty int) (*model.QuizQuestion, bool) {
	q := &model.QuizQuestion{
		Options:    make([]string, model.QuizOptionCount),
		Correct:    -1,
		Difficulty: difficulty,
	}
	seen := make(map[int]bool)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Q:"):
			q.Question = strings.TrimSpace(strings.TrimPrefix(line, "Q:"))

		case len(line) >= 2 && line[0] >= 'A' && line[0] <= 'D' && line[1] == ')':
			idx := int(line[0] - 'A')
			q.Options[idx] = strings.TrimSpace(line[2:])
			seen[idx] = true

		case strings.HasPrefix(line, "Correct:"):
			letter := strings.TrimSpace(strings.TrimPrefix(line, "Correct:"))
			if len(letter) == 1 && letter[0] >= 'A' && letter[0] <= 'D' {
				q.Correct = int(letter[0] - 'A')
			}

		case strings.HasPrefix(line, "Explanation:"):
			q.Explanation = strings.TrimSpace(strings.TrimPrefix(line, "Explanation:"))
		}
	}

	if len(seen) != model.QuizOptionCount {
		return nil, false
	}
	if err := q.Validate(); err != nil {
		return nil, false
	}
	return q, true
}
