package constants

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Rule pairs a constant with a candidate directory, relative to the build
// root, probed when the constant is unset.
type Rule struct {
	Key       Key
	Candidate string
}

// DefaultRules is the fixed probe order. Two candidates target
// FUNCTIONS_SRC (the legacy location first); the first existing one wins.
var DefaultRules = []Rule{
	{Key: KeyFunctionsSrc, Candidate: "netlify-automatic-functions"},
	{Key: KeyFunctionsSrc, Candidate: filepath.Join("netlify", "functions")},
	{Key: KeyEdgeFunctionsSrc, Candidate: filepath.Join("netlify", "edge-functions")},
}

// ExistsFunc reports whether a path exists. Implementations must swallow
// I/O errors and report false instead; a failed probe never fails a build.
type ExistsFunc func(path string) bool

// DirExists is the default ExistsFunc. Any stat failure counts as absent.
func DirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ApplyDefaults fills unset constants from the first existing candidate
// directory and returns a new record; the input is never mutated. Rule
// groups for distinct constants are probed concurrently, but candidates for
// the same constant are evaluated sequentially in declared order and stop
// at the first hit, so an earlier rule always beats a later one. A constant
// already holding a non-empty value is left untouched regardless of what
// exists on disk.
func ApplyDefaults(ctx context.Context, rec Record, buildRoot string, rules []Rule, exists ExistsFunc) Record {
	if exists == nil {
		exists = DirExists
	}

	groups := make(map[Key][]string, len(rules))
	var order []Key
	for _, rule := range rules {
		if _, seen := groups[rule.Key]; !seen {
			order = append(order, rule.Key)
		}
		groups[rule.Key] = append(groups[rule.Key], rule.Candidate)
	}

	var mu sync.Mutex
	detected := make(map[Key]string, len(order))

	g, _ := errgroup.WithContext(ctx)
	for _, key := range order {
		if rec.stringValue(key) != "" {
			continue
		}
		candidates := groups[key]
		g.Go(func() error {
			for _, candidate := range candidates {
				if exists(filepath.Join(buildRoot, candidate)) {
					mu.Lock()
					detected[key] = candidate
					mu.Unlock()
					return nil
				}
			}
			return nil
		})
	}
	// Probes report absence instead of erroring, so Wait cannot fail.
	_ = g.Wait()

	out := rec
	for key, candidate := range detected {
		out = out.withStringValue(key, candidate)
	}
	return out
}
