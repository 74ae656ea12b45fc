package config

// Snapshot is an immutable view of the configuration fields plugins may
// mutate between build phases. Each phase takes its own snapshot, so a
// constants refresh never observes mutations made after it started and
// never depends on a prior phase's snapshot.
type Snapshot struct {
	publishDir       string
	functionsDir     string
	edgeFunctionsDir string
}

// NewSnapshot captures the mutable fields of cfg. A nil config yields an
// empty snapshot: every field reads as unset.
func NewSnapshot(cfg *Config) *Snapshot {
	if cfg == nil {
		return &Snapshot{}
	}
	return &Snapshot{
		publishDir:       cfg.Build.Publish,
		functionsDir:     cfg.FunctionsDirectory(),
		edgeFunctionsDir: cfg.Build.EdgeFunctions,
	}
}

// PublishDir returns the configured publish directory ("" if unset).
func (s *Snapshot) PublishDir() string {
	return s.publishDir
}

// FunctionsDirectory returns the configured functions source directory
// ("" if unset).
func (s *Snapshot) FunctionsDirectory() string {
	return s.functionsDir
}

// EdgeFunctionsDirectory returns the configured edge functions source
// directory ("" if unset).
func (s *Snapshot) EdgeFunctionsDirectory() string {
	return s.edgeFunctionsDir
}
