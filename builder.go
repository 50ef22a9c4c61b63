package taskgate

import (
	"errors"

	"github.com/orchidsoft/taskgate/token"
)

// Builder assembles a Session. Configure it with the With* methods and
// call Build once; a Builder is single use.
type Builder struct {
	config    Config
	gateway   Gateway
	tokens    *token.Repository
	auditSink AuditSink

	built bool
}

// New returns a Builder preloaded with the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithGateway sets the backend the session authenticates against.
func (b *Builder) WithGateway(gw Gateway) *Builder {
	b.gateway = gw
	return b
}

// WithTokenRepository sets the persistence layer for the token pair.
func (b *Builder) WithTokenRepository(repo *token.Repository) *Builder {
	b.tokens = repo
	return b
}

// WithAuditSink enables auditing and routes events to sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the guard latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and returns a ready Session.
func (b *Builder) Build() (*Session, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.gateway == nil {
		return nil, errors.New("gateway required")
	}
	if b.tokens == nil {
		return nil, errors.New("token repository required")
	}

	s := &Session{
		config:  cfg,
		gateway: b.gateway,
		tokens:  b.tokens,
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
		perms:   DefaultPermissionSet(),
	}

	b.built = true

	return s, nil
}
