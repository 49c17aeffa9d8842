package manager

import (
	"time"

	"endpointd/internal/artifact"
	"endpointd/internal/scorer"
	"endpointd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 5 * time.Second
	defaultWarmupDelay   = 20 * time.Millisecond
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// ArtifactCacheDir receives downloaded remote artifacts.
	ArtifactCacheDir string
	// MaxQueueDepth bounds queued invocations per endpoint.
	MaxQueueDepth int
	// MaxWait bounds how long an invocation waits for admission.
	MaxWait time.Duration
	// DrainTimeout bounds how long Delete waits for in-flight work.
	DrainTimeout time.Duration
	// WarmupDelay simulates instance provisioning time in local mode.
	WarmupDelay time.Duration
	// Publisher receives lifecycle events; nil means drop them.
	Publisher EventPublisher
	// LoadScorer overrides artifact loading, for tests. Defaults to scorer.Load.
	LoadScorer func(path string) (scorer.Scorer, error)
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		endpoints:   make(map[string]*endpointInstance),
		definitions: make(map[string]types.EndpointSpec),
		resolver:    artifact.NewResolver(cfg.ArtifactCacheDir),
		loadScorer:  cfg.LoadScorer,
		publisher:   cfg.Publisher,
	}
	if m.loadScorer == nil {
		m.loadScorer = scorer.Load
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	// Apply defaults if unset
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if cfg.WarmupDelay <= 0 {
		m.warmupDelay = defaultWarmupDelay
	} else {
		m.warmupDelay = cfg.WarmupDelay
	}
	m.startTime = time.Now()
	return m
}

// New constructs a Manager with default tunables.
func New(artifactCacheDir string) *Manager {
	return NewWithConfig(ManagerConfig{ArtifactCacheDir: artifactCacheDir})
}
