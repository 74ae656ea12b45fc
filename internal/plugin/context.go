package plugin

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/buildconsts/internal/config"
	"git.home.luguber.info/inful/buildconsts/internal/constants"
)

// Context provides plugins with access to the resolved build constants and
// phase state. A fresh Context is handed to plugins at each build phase;
// the constants record in it is read-only for the duration of the phase.
type Context struct {
	// Context is the standard Go context for cancellation and deadlines.
	Context context.Context

	// Logger provides structured logging for plugin operations.
	Logger *slog.Logger

	// Constants is the resolved constants record for this phase.
	Constants constants.Record

	// Config is the configuration snapshot the record was derived from.
	Config *config.Snapshot

	// BuildID uniquely identifies this build invocation.
	BuildID string

	// Phase names the build phase the plugin is running in.
	Phase string
}

// NewContext creates a plugin context for the first phase of a build.
func NewContext(ctx context.Context, logger *slog.Logger, rec constants.Record, snap *config.Snapshot, phase string) *Context {
	return &Context{
		Context:   ctx,
		Logger:    logger,
		Constants: rec,
		Config:    snap,
		BuildID:   uuid.NewString(),
		Phase:     phase,
	}
}

// ForPhase returns a copy of the context carrying a freshly resolved record
// for the next phase. The receiver is unchanged, so plugins still running
// in the previous phase keep seeing their own record.
func (pc *Context) ForPhase(phase string, rec constants.Record, snap *config.Snapshot) *Context {
	return &Context{
		Context:   pc.Context,
		Logger:    pc.Logger,
		Constants: rec,
		Config:    snap,
		BuildID:   pc.BuildID,
		Phase:     phase,
	}
}

// Constant returns the exported value of a constant by key, or "" when the
// constant is unset. IS_LOCAL is returned in its env-var string form.
func (pc *Context) Constant(key constants.Key) string {
	return pc.Constants.Env()[key.String()]
}

// Env returns the environment variables to inject into a spawned plugin
// process for this phase.
func (pc *Context) Env() map[string]string {
	return pc.Constants.Env()
}
