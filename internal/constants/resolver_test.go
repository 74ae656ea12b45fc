package constants

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/buildconsts/internal/config"
	"git.home.luguber.info/inful/buildconsts/internal/metrics"
	"git.home.luguber.info/inful/buildconsts/internal/version"
)

func newTestResolver(t *testing.T, root string, input MergeInput) *Resolver {
	t.Helper()
	input.BuildRoot = root
	return NewResolver(input, ResolverOptions{
		Metadata: version.Static{Version: "1.4.0"},
	})
}

func writeConfig(t *testing.T, root, content string) *config.Snapshot {
	t.Helper()
	path := filepath.Join(root, "netlify.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return config.NewSnapshot(cfg)
}

func TestResolverInitial_DetectsFunctionsSrcDefault(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "netlify", "functions")

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	rec := resolver.Initial(context.Background(), config.NewSnapshot(nil))

	require.Equal(t, filepath.Join("netlify", "functions"), rec.FunctionsSrc)
}

func TestResolverInitial_UsesInjectedVersion(t *testing.T) {
	root := t.TempDir()

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	rec := resolver.Initial(context.Background(), config.NewSnapshot(nil))

	require.Equal(t, "1.4.0", rec.BuildVersion)
}

func TestResolverInitial_NormalizesConfiguredPublishDir(t *testing.T) {
	root := t.TempDir()
	snap := writeConfig(t, root, "[build]\npublish = \""+filepath.Join(root, "dist")+"\"\n")

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	rec := resolver.Initial(context.Background(), snap)

	require.Equal(t, "dist", rec.PublishDir)
}

func TestResolverInitial_ExplicitFunctionsDirBeatsDetectedDefault(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "netlify", "functions")
	snap := writeConfig(t, root, "[functions]\ndirectory = \"my-functions\"\n")

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	rec := resolver.Initial(context.Background(), snap)

	require.Equal(t, "my-functions", rec.FunctionsSrc)
}

func TestResolverRefresh_PicksUpDirectoryCreatedMidBuild(t *testing.T) {
	root := t.TempDir()

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	base := resolver.Initial(context.Background(), config.NewSnapshot(nil))
	require.Empty(t, base.FunctionsSrc)

	// A plugin creates the functions directory between phases.
	mkdir(t, root, "netlify", "functions")

	rec := resolver.Refresh(context.Background(), base, config.NewSnapshot(nil))
	require.Equal(t, filepath.Join("netlify", "functions"), rec.FunctionsSrc)
}

func TestResolverRefresh_DoesNotMutateBaseRecord(t *testing.T) {
	root := t.TempDir()
	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	base := resolver.Initial(context.Background(), config.NewSnapshot(nil))

	mkdir(t, root, "netlify", "functions")
	_ = resolver.Refresh(context.Background(), base, config.NewSnapshot(nil))

	require.Empty(t, base.FunctionsSrc)
}

func TestResolverRefresh_RepeatedRefreshIsStable(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "netlify", "functions")
	mkdir(t, root, "netlify", "edge-functions")
	snap := writeConfig(t, root, "[build]\npublish = \"dist\"\n")

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli", PackagePath: "pkg"})
	base := resolver.Initial(context.Background(), snap)

	first := resolver.Refresh(context.Background(), base, snap)
	second := resolver.Refresh(context.Background(), first, snap)

	require.Equal(t, first, second)
}

func TestResolverRefresh_EachRefreshIndependentOfPriorDetection(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "netlify", "functions")

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	base := resolver.Initial(context.Background(), config.NewSnapshot(nil))

	phase1 := resolver.Refresh(context.Background(), base, config.NewSnapshot(nil))
	require.Equal(t, filepath.Join("netlify", "functions"), phase1.FunctionsSrc)

	// The legacy directory appears later; refreshing from the base record
	// re-runs detection from scratch, so the earlier rule now wins.
	mkdir(t, root, "netlify-automatic-functions")

	phase2 := resolver.Refresh(context.Background(), base, config.NewSnapshot(nil))
	require.Equal(t, "netlify-automatic-functions", phase2.FunctionsSrc)
}

func TestResolverRefresh_InternalDirsNormalizedAgainstRoot(t *testing.T) {
	root := t.TempDir()

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli", PackagePath: "pkg"})
	rec := resolver.Initial(context.Background(), config.NewSnapshot(nil))

	require.Equal(t, filepath.Join("pkg", ".netlify", "functions-internal"), rec.InternalFunctionsSrc)
	require.Equal(t, filepath.Join("pkg", ".netlify", "edge-functions"), rec.InternalEdgeFunctionsSrc)
	require.Equal(t, filepath.Join("pkg", ".netlify", "cache"), rec.CacheDir)
}

func TestResolverRefresh_NilSnapshotLeavesMutableFieldsUnset(t *testing.T) {
	root := t.TempDir()

	resolver := newTestResolver(t, root, MergeInput{Mode: "cli"})
	base := resolver.Initial(context.Background(), nil)
	rec := resolver.Refresh(context.Background(), base, nil)

	require.Empty(t, rec.PublishDir)
	require.Empty(t, rec.FunctionsSrc)
	require.Empty(t, rec.EdgeFunctionsSrc)
}

type captureRecorder struct {
	resolves  []metrics.ResolveKind
	defaults  []string
	durations []time.Duration
}

func (c *captureRecorder) ObserveResolveDuration(d time.Duration) { c.durations = append(c.durations, d) }
func (c *captureRecorder) IncResolve(kind metrics.ResolveKind)    { c.resolves = append(c.resolves, kind) }
func (c *captureRecorder) IncDefaultApplied(constant string)      { c.defaults = append(c.defaults, constant) }

func TestResolver_RecordsMetrics(t *testing.T) {
	root := t.TempDir()
	mkdir(t, root, "netlify", "functions")

	recorder := &captureRecorder{}
	resolver := NewResolver(MergeInput{BuildRoot: root, Mode: "cli"}, ResolverOptions{
		Metadata: version.Static{Version: "1.4.0"},
		Recorder: recorder,
	})

	base := resolver.Initial(context.Background(), config.NewSnapshot(nil))
	_ = resolver.Refresh(context.Background(), base, config.NewSnapshot(nil))

	require.Equal(t, []metrics.ResolveKind{metrics.ResolveInitial, metrics.ResolveRefresh}, recorder.resolves)
	require.Equal(t, []string{"FUNCTIONS_SRC", "FUNCTIONS_SRC"}, recorder.defaults)
	require.Len(t, recorder.durations, 2)
}
