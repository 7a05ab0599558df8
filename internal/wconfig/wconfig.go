// Package wconfig holds the driver's resolved configuration as a plain
// struct with no package-level state, mirroring how the wider pipeline
// keeps every stage a pure function of its explicit inputs.
package wconfig

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rjchrhl/weaver/internal/inspector"
)

// Config is the explicit, no-global-state configuration threaded
// through the compile and check commands.
type Config struct {
	// AnnotationPrefix is the project's annotation family identifier
	// ("Weaver" by default), matched case-insensitively by the Lexer.
	AnnotationPrefix string
	// TemplateDir addresses the host-language template bundle the
	// Generator reads.
	TemplateDir string
	// ScopeMonotonicity selects the scope-monotonicity rejection policy.
	ScopeMonotonicity inspector.ScopeMonotonicityPolicy
	// DryRun, when true, generates output and diffs it against what is
	// already on disk without writing (the `weaver check` supplement).
	DryRun bool
}

// Default returns the baseline configuration before flags or
// environment overrides are applied.
func Default() Config {
	return Config{
		AnnotationPrefix:  "Weaver",
		TemplateDir:       "templates",
		ScopeMonotonicity: inspector.RejectContainerOnTransient,
	}
}

// LoadEnv applies WEAVER_* environment overrides on top of cfg, loading
// a .env file first if present (a no-op, not an error, when absent).
func LoadEnv(cfg Config) Config {
	_ = godotenv.Load()

	if v := os.Getenv("WEAVER_ANNOTATION_PREFIX"); v != "" {
		cfg.AnnotationPrefix = v
	}
	if v := os.Getenv("WEAVER_TEMPLATE_DIR"); v != "" {
		cfg.TemplateDir = v
	}
	if v := os.Getenv("WEAVER_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DryRun = b
		}
	}
	if v := os.Getenv("WEAVER_STRICT_SCOPE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			cfg.ScopeMonotonicity = inspector.RejectGraphOnTransientToo
		}
	}
	return cfg
}
