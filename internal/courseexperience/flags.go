// Package courseexperience holds the course-experience feature flags and the
// routing decisions driven by them.
package courseexperience

import (
	"context"
	"fmt"

	"campus/internal/waffle"
	"campus/internal/waffle/store/global"
	"campus/internal/waffle/store/override"
	id "campus/pkg/domain"
)

// NamespaceName groups every course-experience flag.
const NamespaceName = "course_experience"

// UnifiedCourseExperienceFlag switches a course to the unified course home
// in place of the legacy courseware view. Overridable per course.
const UnifiedCourseExperienceFlag = "unified_course_experience"

// Route names for the two course home generations.
const (
	RouteUnifiedCourseHome = "course_experience.course_home"
	RouteLegacyCourseHome  = "courseware"
)

// Flags evaluates the course-experience flags.
type Flags struct {
	unifiedHome *waffle.CourseFlag
}

func New(globalStore global.Store, overrides override.Store, opts ...waffle.Option) (*Flags, error) {
	namespace, err := waffle.NewFlagNamespace(
		waffle.NewNamespace(NamespaceName, "Course experience: "),
		globalStore,
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("build course experience namespace: %w", err)
	}
	unifiedHome, err := waffle.NewCourseFlag(namespace, UnifiedCourseExperienceFlag, overrides)
	if err != nil {
		return nil, fmt.Errorf("build unified course experience flag: %w", err)
	}
	return &Flags{unifiedHome: unifiedHome}, nil
}

// UnifiedCourseExperienceEnabled reports whether the course uses the unified
// course home.
func (f *Flags) UnifiedCourseExperienceEnabled(ctx context.Context, courseID id.CourseKey) (bool, error) {
	return f.unifiedHome.IsEnabled(ctx, courseID)
}

// CourseHomeURLName returns the route name of the course home view for the
// course: the unified route when the flag is enabled, the legacy one
// otherwise.
func (f *Flags) CourseHomeURLName(ctx context.Context, courseID id.CourseKey) (string, error) {
	enabled, err := f.UnifiedCourseExperienceEnabled(ctx, courseID)
	if err != nil {
		return "", err
	}
	if enabled {
		return RouteUnifiedCourseHome, nil
	}
	return RouteLegacyCourseHome, nil
}
