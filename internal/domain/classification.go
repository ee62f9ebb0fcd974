package domain

// Subject is the school subject a lesson, activity or score belongs to.
type Subject string

const (
	SubjectEnglish  Subject = "english"
	SubjectFilipino Subject = "filipino"
	SubjectMath     Subject = "math"
)

// Valid reports whether s is one of the known subjects.
func (s Subject) Valid() bool {
	switch s {
	case SubjectEnglish, SubjectFilipino, SubjectMath:
		return true
	}
	return false
}

// Level is the grading period (or the advanced track) of a lesson or activity.
// It is serialized as "type".
type Level string

const (
	LevelFirst    Level = "1st"
	LevelSecond   Level = "2nd"
	LevelThird    Level = "3rd"
	LevelFourth   Level = "4th"
	LevelAdvanced Level = "advanced"
)

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	switch l {
	case LevelFirst, LevelSecond, LevelThird, LevelFourth, LevelAdvanced:
		return true
	}
	return false
}
