package plugin

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/buildconsts/internal/config"
	"git.home.luguber.info/inful/buildconsts/internal/constants"
)

func newTestContext(t *testing.T, rec constants.Record) *Context {
	t.Helper()
	return NewContext(context.Background(), slog.Default(), rec, config.NewSnapshot(nil), "onPreBuild")
}

func TestNewContext_AssignsBuildID(t *testing.T) {
	pc := newTestContext(t, constants.Record{})
	require.NotEmpty(t, pc.BuildID)
	require.Equal(t, "onPreBuild", pc.Phase)
}

func TestForPhase_KeepsBuildIDAndSwapsRecord(t *testing.T) {
	pc := newTestContext(t, constants.Record{PublishDir: "dist"})

	next := pc.ForPhase("onBuild", constants.Record{PublishDir: "public"}, config.NewSnapshot(nil))

	require.Equal(t, pc.BuildID, next.BuildID)
	require.Equal(t, "onBuild", next.Phase)
	require.Equal(t, "public", next.Constants.PublishDir)
	// The previous phase's context still sees its own record.
	require.Equal(t, "dist", pc.Constants.PublishDir)
}

func TestConstant_ReturnsExportedValue(t *testing.T) {
	pc := newTestContext(t, constants.Record{PublishDir: "dist", IsLocal: true})

	require.Equal(t, "dist", pc.Constant(constants.KeyPublishDir))
	require.Equal(t, "true", pc.Constant(constants.KeyIsLocal))
	require.Empty(t, pc.Constant(constants.KeyFunctionsSrc))
}

func TestEnv_MatchesRecordEnv(t *testing.T) {
	rec := constants.Record{SiteID: "site-123", IsLocal: true}
	pc := newTestContext(t, rec)
	require.Equal(t, rec.Env(), pc.Env())
}
