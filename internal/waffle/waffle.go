// Package waffle implements namespaced boolean switches and flags with
// request-scoped memoization and per-course overrides.
//
// Resolution precedence for a flag is: request cache, then the per-call
// override callback, then the global flag store. Within one request the
// first resolution — whichever branch produced it — is pinned for the
// remainder of the request.
package waffle

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"campus/internal/waffle/metrics"
	"campus/internal/waffle/models"
	"campus/internal/waffle/store/global"
	"campus/internal/waffle/store/override"
	id "campus/pkg/domain"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/requestcache"
)

// Request-cache namespaces. Switches and flags are memoized separately so a
// switch and a flag sharing a key never collide.
const (
	switchCacheNamespace = "waffle.switches"
	flagCacheNamespace   = "waffle.flags"
)

var tracer = otel.Tracer("campus/internal/waffle")

// Namespace prefixes short switch/flag names to form globally unique keys.
// Instances are process-wide descriptors created at program start and never
// mutated.
type Namespace struct {
	Name      string
	LogPrefix string
}

// NewNamespace creates a namespace descriptor. The name is required; an
// empty name is a programming error and panics at construction, which is
// always during package wiring.
func NewNamespace(name, logPrefix string) Namespace {
	if name == "" {
		panic("waffle: namespace name is required")
	}
	return Namespace{Name: name, LogPrefix: logPrefix}
}

// Key returns the namespaced key for a switch or flag name,
// e.g. "grades" + "rounding" -> "grades.rounding".
func (n Namespace) Key(name string) string {
	return n.Name + "." + name
}

// Option configures a switch or flag namespace.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func applyOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// SwitchNamespace evaluates namespaced switches against the global store,
// memoizing results in the request cache.
type SwitchNamespace struct {
	Namespace
	store   global.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewSwitchNamespace(namespace Namespace, store global.Store, opts ...Option) (*SwitchNamespace, error) {
	if store == nil {
		return nil, fmt.Errorf("global store is required")
	}
	o := applyOptions(opts)
	return &SwitchNamespace{Namespace: namespace, store: store, logger: o.logger, metrics: o.metrics}, nil
}

// IsEnabled returns whether the switch is active, memoized for the request.
func (n *SwitchNamespace) IsEnabled(ctx context.Context, switchName string) (bool, error) {
	key := n.Key(switchName)
	cache := requestcache.Namespaced(ctx, switchCacheNamespace)

	if active, ok := cache.Get(key); ok {
		n.metrics.SwitchEvaluated(metrics.SourceRequestCache)
		return active, nil
	}

	active, err := n.store.SwitchActive(ctx, key)
	if err != nil {
		return false, fmt.Errorf("switch %q: %w", key, err)
	}
	cache.Set(key, active)
	n.metrics.SwitchEvaluated(metrics.SourceWaffle)
	return active, nil
}

// Override forces the switch to active for the duration of fn, in both the
// request cache and the global store.
//
// Cleanup is guaranteed on every exit path, including a panic inside fn, and
// releases in inner-first order: the persisted value is restored before the
// request-cache value.
func (n *SwitchNamespace) Override(ctx context.Context, switchName string, active bool, fn func(context.Context) error) (err error) {
	key := n.Key(switchName)

	// Record the current effective value; this also primes the cache.
	previous, err := n.IsEnabled(ctx, switchName)
	if err != nil {
		return err
	}

	cache := requestcache.Namespaced(ctx, switchCacheNamespace)
	cache.Set(key, active)
	n.logger.InfoContext(ctx, n.LogPrefix+"switch overridden for request",
		"switch", key,
		"active", active,
	)
	defer func() {
		cache.Set(key, previous)
	}()

	persisted, err := n.store.SwitchActive(ctx, key)
	if err != nil {
		return fmt.Errorf("switch %q: %w", key, err)
	}
	if err := n.store.SetSwitch(ctx, key, active); err != nil {
		return fmt.Errorf("override switch %q: %w", key, err)
	}
	defer func() {
		if restoreErr := n.store.SetSwitch(ctx, key, persisted); restoreErr != nil {
			n.logger.ErrorContext(ctx, n.LogPrefix+"failed to restore persisted switch value",
				"switch", key,
				"error", restoreErr,
			)
			if err == nil {
				err = fmt.Errorf("restore switch %q: %w", key, restoreErr)
			}
		}
	}()

	return fn(ctx)
}

// OverrideFn is consulted before the global flag store. Returning Unset means
// "no opinion" and falls through to the store; a definite state wins.
type OverrideFn func(ctx context.Context, namespacedKey string) (models.ForceState, error)

// FlagNamespace evaluates namespaced flags with the precedence algorithm:
// request cache > per-call override callback > global flag store.
type FlagNamespace struct {
	Namespace
	store   global.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewFlagNamespace(namespace Namespace, store global.Store, opts ...Option) (*FlagNamespace, error) {
	if store == nil {
		return nil, fmt.Errorf("global store is required")
	}
	o := applyOptions(opts)
	return &FlagNamespace{Namespace: namespace, store: store, logger: o.logger, metrics: o.metrics}, nil
}

// IsEnabled returns whether the flag is enabled, memoized for the request.
// beforeWaffle may be nil, in which case only the cache and the global store
// are consulted.
func (n *FlagNamespace) IsEnabled(ctx context.Context, flagName string, beforeWaffle OverrideFn) (bool, error) {
	key := n.Key(flagName)
	cache := requestcache.Namespaced(ctx, flagCacheNamespace)

	if enabled, ok := cache.Get(key); ok {
		n.metrics.FlagEvaluated(metrics.SourceRequestCache)
		return enabled, nil
	}

	ctx, span := tracer.Start(ctx, "waffle.resolve_flag",
		trace.WithAttributes(attribute.String("waffle.flag", key)))
	defer span.End()

	var (
		enabled  bool
		definite bool
		source   = metrics.SourceWaffle
	)
	if beforeWaffle != nil {
		state, err := beforeWaffle(ctx, key)
		if err != nil {
			return false, fmt.Errorf("flag %q override check: %w", key, err)
		}
		enabled, definite = state.Bool()
		if definite {
			source = metrics.SourceOverride
		}
	}

	if !definite {
		var err error
		enabled, err = n.store.FlagActive(ctx, key)
		if err != nil {
			return false, fmt.Errorf("flag %q: %w", key, err)
		}
	}

	cache.Set(key, enabled)
	n.metrics.FlagEvaluated(source)
	span.SetAttributes(
		attribute.Bool("waffle.enabled", enabled),
		attribute.String("waffle.source", source),
	)
	return enabled, nil
}

// Switch binds a SwitchNamespace to a single switch name.
type Switch struct {
	namespace  *SwitchNamespace
	switchName string
}

func NewSwitch(namespace *SwitchNamespace, switchName string) Switch {
	return Switch{namespace: namespace, switchName: switchName}
}

func (s Switch) Key() string { return s.namespace.Key(s.switchName) }

func (s Switch) IsEnabled(ctx context.Context) (bool, error) {
	return s.namespace.IsEnabled(ctx, s.switchName)
}

// Flag binds a FlagNamespace to a single flag name with no course awareness.
type Flag struct {
	namespace *FlagNamespace
	flagName  string
}

func NewFlag(namespace *FlagNamespace, flagName string) Flag {
	return Flag{namespace: namespace, flagName: flagName}
}

func (f Flag) Key() string { return f.namespace.Key(f.flagName) }

func (f Flag) IsEnabled(ctx context.Context) (bool, error) {
	return f.namespace.IsEnabled(ctx, f.flagName, nil)
}

// CourseFlag is a flag that can be forced on or off per course. An override
// on file for the course always wins over the global flag value.
type CourseFlag struct {
	namespace *FlagNamespace
	flagName  string
	overrides override.Store
}

func NewCourseFlag(namespace *FlagNamespace, flagName string, overrides override.Store) (*CourseFlag, error) {
	if overrides == nil {
		return nil, fmt.Errorf("override store is required")
	}
	return &CourseFlag{namespace: namespace, flagName: flagName, overrides: overrides}, nil
}

func (f *CourseFlag) Key() string { return f.namespace.Key(f.flagName) }

// IsEnabled evaluates the flag for the given course. A zero course key is a
// precondition failure at the call site and fails fast.
func (f *CourseFlag) IsEnabled(ctx context.Context, courseID id.CourseKey) (bool, error) {
	if courseID.IsZero() {
		return false, dErrors.Newf(dErrors.CodeInvalidInput, "course flag %q requires a course key", f.Key())
	}
	return f.namespace.IsEnabled(ctx, f.flagName, func(ctx context.Context, namespacedKey string) (models.ForceState, error) {
		return f.overrides.Value(ctx, namespacedKey, courseID)
	})
}
