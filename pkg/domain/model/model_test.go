package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

func TestRecordValidate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		r := &model.Record{
			Text:  "Q: question\nA: answer",
			Owner: types.OwnerOf("alice"),
		}
		gt.NoError(t, r.Validate())
	})

	t.Run("empty text", func(t *testing.T) {
		r := &model.Record{Owner: types.OwnerShared}
		err := r.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})

	t.Run("unset owner", func(t *testing.T) {
		r := &model.Record{Text: "some text"}
		err := r.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, types.ErrValidation)).True()
	})
}

func TestRecordClone(t *testing.T) {
	r := &model.Record{
		Text:      "text",
		Embedding: []float32{1, 2, 3},
		Owner:     types.OwnerShared,
		Tags:      types.Tags{types.TagType: types.TypeQA},
	}

	c := r.Clone()
	c.Embedding[0] = 99
	c.Tags[types.TagType] = types.TypeLesson

	gt.Value(t, r.Embedding[0]).Equal(float32(1))
	gt.Value(t, r.Tags[types.TagType]).Equal(types.TypeQA)
}

func TestLessonValidate(t *testing.T) {
	valid := func() *model.Lesson {
		return &model.Lesson{
			ID:      "pointers-basics",
			Title:   "Pointers",
			Level:   3,
			Content: "A pointer holds a memory address.",
		}
	}

	gt.NoError(t, valid().Validate())

	t.Run("level out of range", func(t *testing.T) {
		for _, level := range []int{0, 11, -1} {
			l := valid()
			l.Level = level
			gt.Bool(t, errors.Is(l.Validate(), types.ErrValidation)).True()
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		l := valid()
		l.ID = ""
		gt.Bool(t, errors.Is(l.Validate(), types.ErrValidation)).True()

		l = valid()
		l.Content = ""
		gt.Bool(t, errors.Is(l.Validate(), types.ErrValidation)).True()
	})
}

func TestLessonFragments(t *testing.T) {
	l := &model.Lesson{
		ID:      "loops",
		Title:   "Loops",
		Level:   2,
		Content: "for and while repeat statements",
		CodeExamples: []string{
			"for (int i = 0; i < 10; i++) { }",
			"while (n > 0) { n--; }",
		},
	}

	fragments := l.Fragments()
	gt.Array(t, fragments).Length(3)
	gt.Bool(t, strings.Contains(fragments[0], "for and while repeat statements")).True()
	gt.Bool(t, strings.Contains(fragments[1], "Loops (example)")).True()
	gt.Bool(t, strings.Contains(fragments[2], "while (n > 0)")).True()
}

func TestQuizQuestionValidate(t *testing.T) {
	valid := func() *model.QuizQuestion {
		return &model.QuizQuestion{
			Question:    "What does * do in a declaration?",
			Options:     []string{"declares a pointer", "multiplies", "comments", "dereferences"},
			Correct:     0,
			Explanation: "In a declaration, * makes the variable a pointer.",
			Difficulty:  3,
		}
	}

	gt.NoError(t, valid().Validate())

	t.Run("wrong option count", func(t *testing.T) {
		q := valid()
		q.Options = q.Options[:3]
		gt.Bool(t, errors.Is(q.Validate(), types.ErrValidation)).True()
	})

	t.Run("answer index out of range", func(t *testing.T) {
		for _, idx := range []int{-1, 4} {
			q := valid()
			q.Correct = idx
			gt.Bool(t, errors.Is(q.Validate(), types.ErrValidation)).True()
		}
	})

	t.Run("empty question", func(t *testing.T) {
		q := valid()
		q.Question = ""
		gt.Bool(t, errors.Is(q.Validate(), types.ErrValidation)).True()
	})
}
