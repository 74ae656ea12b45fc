package constants

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/buildconsts/internal/config"
	"git.home.luguber.info/inful/buildconsts/internal/logfields"
	"git.home.luguber.info/inful/buildconsts/internal/metrics"
	"git.home.luguber.info/inful/buildconsts/internal/version"
)

// Resolver derives the constants record handed to plugins. It holds only
// the static per-invocation inputs; every call takes an immutable config
// snapshot and returns a wholly new record, so refreshes across build
// phases are independent and a detected default from one phase carries no
// weight in the next.
type Resolver struct {
	input    MergeInput
	rules    []Rule
	exists   ExistsFunc
	metadata version.Provider
	recorder metrics.Recorder
}

// ResolverOptions configures the injectable collaborators of a Resolver.
// Zero values select the production defaults.
type ResolverOptions struct {
	Rules    []Rule
	Exists   ExistsFunc
	Metadata version.Provider
	Recorder metrics.Recorder
}

// NewResolver creates a resolver for one build invocation.
func NewResolver(input MergeInput, opts ResolverOptions) *Resolver {
	if opts.Rules == nil {
		opts.Rules = DefaultRules
	}
	if opts.Exists == nil {
		opts.Exists = DirExists
	}
	if opts.Metadata == nil {
		opts.Metadata = version.FromLdflags()
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	return &Resolver{
		input:    input,
		rules:    opts.Rules,
		exists:   opts.Exists,
		metadata: opts.Metadata,
		recorder: opts.Recorder,
	}
}

// Initial computes the base record for a new build invocation: the static
// merge followed by a first refresh against the given snapshot.
func (r *Resolver) Initial(ctx context.Context, snap *config.Snapshot) Record {
	input := r.input
	input.BuildVersion = r.metadata.BuildVersion()
	base := Merge(input)
	return r.refresh(ctx, base, snap, metrics.ResolveInitial)
}

// Refresh re-derives the mutable constants before a build phase. The base
// record is left untouched; callers discard their previous record in favor
// of the returned one. Safe to call any number of times.
func (r *Resolver) Refresh(ctx context.Context, base Record, snap *config.Snapshot) Record {
	return r.refresh(ctx, base, snap, metrics.ResolveRefresh)
}

func (r *Resolver) refresh(ctx context.Context, base Record, snap *config.Snapshot, kind metrics.ResolveKind) Record {
	start := time.Now()
	resolveID := uuid.NewString()

	if snap == nil {
		snap = config.NewSnapshot(nil)
	}

	rec := base
	rec.PublishDir = snap.PublishDir()
	rec.FunctionsSrc = snap.FunctionsDirectory()
	rec.EdgeFunctionsSrc = snap.EdgeFunctionsDirectory()

	defaulted := ApplyDefaults(ctx, rec, r.input.BuildRoot, r.rules, r.exists)
	r.recordAppliedDefaults(rec, defaulted)

	out := normalizeAll(defaulted, r.input.BuildRoot)

	r.recorder.ObserveResolveDuration(time.Since(start))
	r.recorder.IncResolve(kind)
	slog.Debug("Constants resolved",
		logfields.ResolveID(resolveID),
		logfields.BuildRoot(r.input.BuildRoot),
		logfields.Mode(r.input.Mode),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	return out
}

// recordAppliedDefaults counts the constants that default detection filled
// in, by comparing the record before and after the pass.
func (r *Resolver) recordAppliedDefaults(before, after Record) {
	seen := map[Key]struct{}{}
	for _, rule := range r.rules {
		if _, ok := seen[rule.Key]; ok {
			continue
		}
		seen[rule.Key] = struct{}{}
		if before.stringValue(rule.Key) == "" && after.stringValue(rule.Key) != "" {
			r.recorder.IncDefaultApplied(string(rule.Key))
		}
	}
}
