package config

import "fmt"

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks cross-field constraints that defaults cannot repair.
// Called once at startup; a validation failure is fatal.
func (c *Config) Validate() error {
	if err := validateLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if err := validatePort("server.port", c.Server.Port); err != nil {
		return err
	}
	if err := c.Semantic.validate(); err != nil {
		return err
	}
	if err := c.Consensus.validate(); err != nil {
		return err
	}
	if c.Database.Enabled && c.Database.Driver == "sqlite3" && c.Database.Path == "" {
		return &ValidationError{Field: "database.path", Message: "required for sqlite3 driver"}
	}
	return nil
}

func (s *SemanticConfig) validate() error {
	switch s.Mode {
	case SemanticOff, SemanticSidecar, SemanticMemory:
	default:
		return &ValidationError{Field: "semantic.mode", Message: "must be one of: off, sidecar, memory"}
	}
	if s.Mode == SemanticSidecar && s.SidecarURL == "" {
		return &ValidationError{Field: "semantic.sidecar_url", Message: "required for sidecar mode"}
	}
	if s.Mode == SemanticMemory && s.EmbeddingsFile == "" {
		return &ValidationError{Field: "semantic.embeddings_file", Message: "required for memory mode"}
	}
	return nil
}

func (c *ConsensusConfig) validate() error {
	sum := c.WeightKeyword + c.WeightLocation + c.WeightSemantic + c.WeightRescue + c.WeightDictionary
	if sum <= 0 {
		return &ValidationError{Field: "consensus", Message: "signal weights must sum above zero"}
	}
	if c.HighPrecisionBar < c.StandardBar {
		return &ValidationError{Field: "consensus.high_precision_bar", Message: "must be at least the standard bar"}
	}
	return nil
}

func validateLogLevel(level string) error {
	switch level {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return nil
	default:
		return &ValidationError{Field: "logging.level", Message: "must be one of: debug, info, warn, error, fatal"}
	}
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return &ValidationError{Field: field, Message: "must be between 1 and 65535"}
	}
	return nil
}
