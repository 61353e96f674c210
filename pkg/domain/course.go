package domain

import (
	"fmt"
	"strings"

	dErrors "campus/pkg/domain-errors"
)

// courseKeyPrefix is the serialized form marker, e.g. "course-v1:MITx+6.00x+2026".
const courseKeyPrefix = "course-v1:"

// CourseKey is the opaque structured identifier of a course run.
//
// Invariants:
//   - Org, Course, and Run are non-empty
//   - none of the parts contain '+' or whitespace
//   - the zero value is invalid and rejected at trust boundaries
type CourseKey struct {
	Org    string
	Course string
	Run    string
}

// ParseCourseKey parses the serialized "course-v1:Org+Course+Run" form.
func ParseCourseKey(s string) (CourseKey, error) {
	if s == "" {
		return CourseKey{}, dErrors.New(dErrors.CodeInvalidInput, "course key cannot be empty")
	}
	rest, ok := strings.CutPrefix(s, courseKeyPrefix)
	if !ok {
		return CourseKey{}, dErrors.Newf(dErrors.CodeInvalidInput, "course key %q must start with %q", s, courseKeyPrefix)
	}
	parts := strings.Split(rest, "+")
	if len(parts) != 3 {
		return CourseKey{}, dErrors.Newf(dErrors.CodeInvalidInput, "course key %q must have org+course+run parts", s)
	}
	key := CourseKey{Org: parts[0], Course: parts[1], Run: parts[2]}
	if err := key.validate(); err != nil {
		return CourseKey{}, err
	}
	return key, nil
}

func (k CourseKey) validate() error {
	for _, part := range []string{k.Org, k.Course, k.Run} {
		if part == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "course key parts cannot be empty")
		}
		if strings.ContainsAny(part, "+ \t\n") {
			return dErrors.Newf(dErrors.CodeInvalidInput, "course key part %q contains reserved characters", part)
		}
	}
	return nil
}

// IsZero reports whether the key is the zero value. Callers that require a
// course-scoped operation treat a zero key as a precondition failure.
func (k CourseKey) IsZero() bool {
	return k == CourseKey{}
}

func (k CourseKey) String() string {
	return fmt.Sprintf("%s%s+%s+%s", courseKeyPrefix, k.Org, k.Course, k.Run)
}
