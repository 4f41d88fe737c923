package config

import (
	"fmt"
	"os"
	"time"
)

// Default configuration values.
const (
	defaultServiceName      = "annotator"
	defaultServiceVersion   = "4.0.0"
	defaultServicePort      = 8090
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultWorkers          = 4
	defaultProgressEvery    = 100
	defaultPostTimeoutSec   = 5
	defaultWindowSize       = 3
	defaultWindowMaxAgeHrs  = 4
	defaultTemporalConf     = 0.6
	defaultSemanticMinScore = 0.75
	defaultSemanticLimit    = 3
	defaultSemanticScale    = 0.9
	defaultSemanticTimeout  = 10 * time.Second
	defaultSemanticRPS      = 5.0
	defaultSemanticBurst    = 10
	defaultCacheTTL         = time.Hour
	defaultEmbeddingModel   = "text-embedding-3-small"
	defaultDBHost           = "localhost"
	defaultDBPort           = 5432
	defaultDBUser           = "postgres"
	defaultDBName           = "gazetteer"
	defaultDBSSLMode        = "disable"
	defaultDBMaxConns       = 25
	defaultDBMaxIdleConns   = 5
	defaultESURL            = "http://localhost:9200"
	defaultESMaxRetries     = 3
	defaultESTimeoutSec     = 30
	defaultESIndexPrefix    = "annotations"
)

// Tie-break defaults for simultaneous gazetteer matches. Empirically tuned,
// exposed so deployments can adjust without a rebuild.
const (
	defaultTieBase         = 0.5
	defaultTieVillageBonus = 0.3
	defaultTieULBBonus     = 0.2
	defaultTieDistrictBonus = 0.1
	defaultTieContextBonus = 0.5
	defaultTieMarkerBonus  = 1.0
	defaultTieDepthBonus   = 0.05
)

// Consensus scorer defaults.
const (
	defaultWeightKeyword    = 0.25
	defaultWeightLocation   = 0.20
	defaultWeightSemantic   = 0.20
	defaultWeightRescue     = 0.15
	defaultWeightDictionary = 0.10
	defaultHighPrecisionBar = 0.92
	defaultStandardBar      = 0.85
	defaultAgreementBoost   = 1.1
	defaultAgreementFloor   = 0.8
	defaultAgreementCount   = 3
)

// Config holds all configuration for the annotator service.
type Config struct {
	Service       ServiceConfig       `yaml:"service"`
	Logging       LoggingConfig       `yaml:"logging"`
	Gazetteer     GazetteerConfig     `yaml:"gazetteer"`
	Taxonomy      TaxonomyConfig      `yaml:"taxonomy"`
	Resolver      ResolverConfig      `yaml:"resolver"`
	Semantic      SemanticConfig      `yaml:"semantic"`
	Consensus     ConsensusConfig     `yaml:"consensus"`
	Batch         BatchConfig         `yaml:"batch"`
	Database      DatabaseConfig      `yaml:"database"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Server        ServerConfig        `yaml:"server"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Debug   bool   `env:"APP_DEBUG" yaml:"debug"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// GazetteerConfig locates the administrative reference datasets. All files
// are optional; missing files leave the corresponding index partial.
type GazetteerConfig struct {
	VillagesFile    string `env:"GAZETTEER_VILLAGES"  yaml:"villages_file"`
	UrbanBodiesFile string `env:"GAZETTEER_ULBS"      yaml:"urban_bodies_file"`
	DistrictsFile   string `env:"GAZETTEER_DISTRICTS" yaml:"districts_file"`
	LandmarksFile   string `env:"GAZETTEER_LANDMARKS" yaml:"landmarks_file"`
	// SeedDisabled skips the embedded canonical table, for tests that need
	// a truly empty gazetteer.
	SeedDisabled bool `yaml:"seed_disabled"`
}

// TaxonomyConfig locates keyword-cluster and rescue-tier overrides.
type TaxonomyConfig struct {
	// File overrides the embedded event keyword clusters when set.
	File string `env:"TAXONOMY_FILE" yaml:"file"`
	// RescueOverlay is the advisory-generated rescue tier list. Reloaded
	// on demand; invalid content keeps the current tiers.
	RescueOverlay string `env:"RESCUE_OVERLAY" yaml:"rescue_overlay"`
}

// ResolverConfig holds location resolver tuning.
type ResolverConfig struct {
	TemporalEnabled  bool          `yaml:"temporal_enabled"`
	WindowSize       int           `yaml:"window_size"`
	WindowMaxAge     time.Duration `yaml:"window_max_age"`
	TemporalConf     float64       `yaml:"temporal_confidence"` // 0.0-0.75
	SemanticMinScore float64       `yaml:"semantic_min_score"`
	SemanticLimit    int           `yaml:"semantic_limit"`
	SemanticScale    float64       `yaml:"semantic_scale"`

	TieBreak TieBreakConfig `yaml:"tie_break"`
}

// TieBreakConfig holds the additive bonuses used to pick between
// simultaneously matched gazetteer candidates.
type TieBreakConfig struct {
	Base          float64 `yaml:"base"`
	VillageBonus  float64 `yaml:"village_bonus"`
	ULBBonus      float64 `yaml:"ulb_bonus"`
	DistrictBonus float64 `yaml:"district_bonus"`
	ContextBonus  float64 `yaml:"context_bonus"`
	MarkerBonus   float64 `yaml:"marker_bonus"`
	DepthBonus    float64 `yaml:"depth_bonus"`
}

// SemanticConfig configures the nearest-neighbor location search backend.
// Mode selects the implementation: "off", "sidecar" (HTTP service) or
// "memory" (precomputed embeddings file + embeddings API).
type SemanticConfig struct {
	Mode       string        `env:"SEMANTIC_MODE"        yaml:"mode"`
	SidecarURL string        `env:"SEMANTIC_SIDECAR_URL" yaml:"sidecar_url"`
	Timeout    time.Duration `yaml:"timeout"`

	EmbeddingsFile string  `env:"SEMANTIC_EMBEDDINGS" yaml:"embeddings_file"`
	APIKey         string  `env:"OPENAI_API_KEY"      yaml:"api_key"`
	BaseURL        string  `env:"OPENAI_BASE_URL"     yaml:"base_url"`
	Model          string  `yaml:"model"`
	RequestsPerSec float64 `yaml:"requests_per_sec"`
	Burst          int     `yaml:"burst"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
}

// Semantic modes.
const (
	SemanticOff     = "off"
	SemanticSidecar = "sidecar"
	SemanticMemory  = "memory"
)

// ConsensusConfig holds signal weights and review routing bars.
type ConsensusConfig struct {
	WeightKeyword    float64 `yaml:"weight_keyword"`
	WeightLocation   float64 `yaml:"weight_location"`
	WeightSemantic   float64 `yaml:"weight_semantic"`
	WeightRescue     float64 `yaml:"weight_rescue"`
	WeightDictionary float64 `yaml:"weight_dictionary"`

	HighPrecisionBar float64 `yaml:"high_precision_bar"`
	StandardBar      float64 `yaml:"standard_bar"`
}

// BatchConfig holds JSONL batch driver settings.
type BatchConfig struct {
	Workers       int           `env:"BATCH_WORKERS" yaml:"workers"`
	ProgressEvery int           `yaml:"progress_every"`
	PostTimeout   time.Duration `yaml:"post_timeout"`
}

// DatabaseConfig holds the optional SQL gazetteer reference store.
// Driver "postgres" uses host/port credentials; "sqlite3" uses Path.
type DatabaseConfig struct {
	Enabled         bool          `env:"GAZETTEER_DB_ENABLED" yaml:"enabled"`
	Driver          string        `env:"GAZETTEER_DB_DRIVER"  yaml:"driver"`
	Host            string        `env:"POSTGRES_HOST"        yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"        yaml:"port"`
	User            string        `env:"POSTGRES_USER"        yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD"    yaml:"password"`
	Database        string        `env:"POSTGRES_DB"          yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"     yaml:"sslmode"`
	Path            string        `env:"GAZETTEER_DB_PATH"    yaml:"path"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// DSN returns the connection string for the configured driver.
func (c *DatabaseConfig) DSN() string {
	if c.Driver == "sqlite3" {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// ElasticsearchConfig holds the optional annotation sink.
type ElasticsearchConfig struct {
	Enabled     bool          `env:"ES_ENABLED"        yaml:"enabled"`
	URL         string        `env:"ELASTICSEARCH_URL" yaml:"url"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	MaxRetries  int           `yaml:"max_retries"`
	Timeout     time.Duration `yaml:"timeout"`
	IndexPrefix string        `yaml:"index_prefix"`
}

// ServerConfig holds the ops HTTP server configuration.
type ServerConfig struct {
	Host         string        `env:"OPS_HOST" yaml:"host"`
	Port         int           `env:"OPS_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load loads configuration from the specified path. A missing file is not
// an error: defaults plus environment overrides apply, so the annotator
// runs with zero configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := &Config{}
		setDefaults(cfg)
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return LoadFileWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setLoggingDefaults(&cfg.Logging)
	setResolverDefaults(&cfg.Resolver)
	setSemanticDefaults(&cfg.Semantic)
	setConsensusDefaults(&cfg.Consensus)
	setBatchDefaults(&cfg.Batch)
	setDatabaseDefaults(&cfg.Database)
	setElasticsearchDefaults(&cfg.Elasticsearch)
	setServerDefaults(&cfg.Server)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}

func setResolverDefaults(r *ResolverConfig) {
	if r.WindowSize == 0 {
		r.WindowSize = defaultWindowSize
	}
	if r.WindowMaxAge == 0 {
		r.WindowMaxAge = defaultWindowMaxAgeHrs * time.Hour
	}
	if r.TemporalConf == 0 {
		r.TemporalConf = defaultTemporalConf
	}
	if r.SemanticMinScore == 0 {
		r.SemanticMinScore = defaultSemanticMinScore
	}
	if r.SemanticLimit == 0 {
		r.SemanticLimit = defaultSemanticLimit
	}
	if r.SemanticScale == 0 {
		r.SemanticScale = defaultSemanticScale
	}
	setTieBreakDefaults(&r.TieBreak)
}

func setTieBreakDefaults(t *TieBreakConfig) {
	if t.Base == 0 {
		t.Base = defaultTieBase
	}
	if t.VillageBonus == 0 {
		t.VillageBonus = defaultTieVillageBonus
	}
	if t.ULBBonus == 0 {
		t.ULBBonus = defaultTieULBBonus
	}
	if t.DistrictBonus == 0 {
		t.DistrictBonus = defaultTieDistrictBonus
	}
	if t.ContextBonus == 0 {
		t.ContextBonus = defaultTieContextBonus
	}
	if t.MarkerBonus == 0 {
		t.MarkerBonus = defaultTieMarkerBonus
	}
	if t.DepthBonus == 0 {
		t.DepthBonus = defaultTieDepthBonus
	}
}

func setSemanticDefaults(s *SemanticConfig) {
	if s.Mode == "" {
		s.Mode = SemanticOff
	}
	if s.Timeout == 0 {
		s.Timeout = defaultSemanticTimeout
	}
	if s.Model == "" {
		s.Model = defaultEmbeddingModel
	}
	if s.RequestsPerSec == 0 {
		s.RequestsPerSec = defaultSemanticRPS
	}
	if s.Burst == 0 {
		s.Burst = defaultSemanticBurst
	}
	if s.CacheTTL == 0 {
		s.CacheTTL = defaultCacheTTL
	}
}

func setConsensusDefaults(c *ConsensusConfig) {
	if c.WeightKeyword == 0 {
		c.WeightKeyword = defaultWeightKeyword
	}
	if c.WeightLocation == 0 {
		c.WeightLocation = defaultWeightLocation
	}
	if c.WeightSemantic == 0 {
		c.WeightSemantic = defaultWeightSemantic
	}
	if c.WeightRescue == 0 {
		c.WeightRescue = defaultWeightRescue
	}
	if c.WeightDictionary == 0 {
		c.WeightDictionary = defaultWeightDictionary
	}
	if c.HighPrecisionBar == 0 {
		c.HighPrecisionBar = defaultHighPrecisionBar
	}
	if c.StandardBar == 0 {
		c.StandardBar = defaultStandardBar
	}
}

func setBatchDefaults(b *BatchConfig) {
	if b.Workers == 0 {
		b.Workers = defaultWorkers
	}
	if b.ProgressEvery == 0 {
		b.ProgressEvery = defaultProgressEvery
	}
	if b.PostTimeout == 0 {
		b.PostTimeout = defaultPostTimeoutSec * time.Second
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Driver == "" {
		d.Driver = "postgres"
	}
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = 5 * time.Minute
	}
}

func setElasticsearchDefaults(e *ElasticsearchConfig) {
	if e.URL == "" {
		e.URL = defaultESURL
	}
	if e.MaxRetries == 0 {
		e.MaxRetries = defaultESMaxRetries
	}
	if e.Timeout == 0 {
		e.Timeout = defaultESTimeoutSec * time.Second
	}
	if e.IndexPrefix == "" {
		e.IndexPrefix = defaultESIndexPrefix
	}
}

func setServerDefaults(s *ServerConfig) {
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
	if s.IdleTimeout == 0 {
		s.IdleTimeout = 60 * time.Second
	}
}
