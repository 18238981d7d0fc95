package lesson

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/edu-lab/mentor/pkg/domain/model"
	"github.com/edu-lab/mentor/pkg/domain/types"
)

// lessonFile is the TOML representation of a lesson
type lessonFile struct {
	ID            string   `toml:"id"`
	Title         string   `toml:"title"`
	Level         int      `toml:"level"`
	Prerequisites []string `toml:"prerequisites"`
	Content       string   `toml:"content"`
	CodeExamples  []string `toml:"code_examples"`
}

// Load reads and validates one lesson TOML file
func Load(path string) (*model.Lesson, error) {
	// #nosec G304 - path comes from the operator's CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read lesson file", goerr.V("path", path))
	}

	var f lessonFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, goerr.Wrap(err, "failed to parse lesson TOML", goerr.V("path", path))
	}

	l := &model.Lesson{
		ID:           types.LessonID(f.ID),
		Title:        f.Title,
		Level:        f.Level,
		Content:      f.Content,
		CodeExamples: f.CodeExamples,
	}
	for _, p := range f.Prerequisites {
		l.Prerequisites = append(l.Prerequisites, types.LessonID(p))
	}

	if err := l.Validate(); err != nil {
		return nil, goerr.Wrap(err, "lesson validation failed", goerr.V("path", path))
	}

	return l, nil
}

// LoadDir loads every .toml lesson in dir, sorted by file name. Duplicate
// lesson IDs across files are rejected.
func LoadDir(dir string) ([]*model.Lesson, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read lesson directory", goerr.V("dir", dir))
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	seen := make(map[types.LessonID]string)
	lessons := make([]*model.Lesson, 0, len(paths))
	for _, path := range paths {
		l, err := Load(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[l.ID]; dup {
			return nil, goerr.Wrap(types.ErrValidation, "duplicate lesson ID",
				goerr.V("lessonID", l.ID),
				goerr.V("path", path),
				goerr.V("previousPath", prev),
			)
		}
		seen[l.ID] = path
		lessons = append(lessons, l)
	}

	return lessons, nil
}
