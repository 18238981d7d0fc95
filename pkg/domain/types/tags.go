package types

// TagKey is a recognized metadata key on a Record. Tags drive structured
// filtering in Search, independent of semantic similarity. Keeping the key
// set enumerated closes off accidental cross-purpose collisions between
// call sites.
type TagKey string

const (
	// TagType classifies a Record (see TypeQA / TypeLesson)
	TagType TagKey = "type"
	// TagLevel holds the student level the Record was created at
	TagLevel TagKey = "level"
	// TagLesson holds the LessonID for lesson fragments
	TagLesson TagKey = "lesson"
	// TagTopic holds the free-form topic of a lesson fragment
	TagTopic TagKey = "topic"
)

// Recognized values for TagType
const (
	TypeQA     = "qa"
	TypeLesson = "lesson"
)

// Tags is a typed metadata mapping on a Record
type Tags map[TagKey]string

// Clone returns a deep copy, nil-safe
func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	c := make(Tags, len(t))
	for k, v := range t {
		c[k] = v
	}
	return c
}

// Matches reports whether every entry of filter is present with an equal
// value. An empty filter matches everything.
func (t Tags) Matches(filter Tags) bool {
	for k, v := range filter {
		if t[k] != v {
			return false
		}
	}
	return true
}
