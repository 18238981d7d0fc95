package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/edu-lab/mentor/pkg/domain/types"
)

// Lesson is curriculum content loaded from a TOML lesson file. Lessons are
// ingested as shared Records so every student's retrieval can surface them.
type Lesson struct {
	ID            types.LessonID
	Title         string
	Level         int
	Prerequisites []types.LessonID
	Content       string
	CodeExamples  []string
}

// Validate checks the lesson invariants
func (l *Lesson) Validate() error {
	if l.ID == "" {
		return goerr.Wrap(types.ErrValidation, "lesson id is required")
	}
	if l.Title == "" {
		return goerr.Wrap(types.ErrValidation, "lesson title is required",
			goerr.V("lessonID", l.ID))
	}
	if l.Content == "" {
		return goerr.Wrap(types.ErrValidation, "lesson content is required",
			goerr.V("lessonID", l.ID))
	}
	if l.Level < 1 || l.Level > 10 {
		return goerr.Wrap(types.ErrValidation, "lesson level must be between 1 and 10",
			goerr.V("lessonID", l.ID),
			goerr.V("level", l.Level))
	}
	return nil
}

// Fragments returns the ingestible text units of the lesson: the prose
// content followed by each code example. Each fragment becomes one shared
// Record so retrieval can rank them independently.
func (l *Lesson) Fragments() []string {
	fragments := make([]string, 0, 1+len(l.CodeExamples))
	fragments = append(fragments, l.Title+"\n\n"+l.Content)
	for _, ex := range l.CodeExamples {
		fragments = append(fragments, l.Title+" (example)\n\n"+ex)
	}
	return fragments
}
