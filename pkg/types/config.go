package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"PORT" default:"8080"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	// Storage
	// memory, postgres or sqlite
	StoreDriver string `envconfig:"STORE_DRIVER" default:"memory"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/donormatch.db"`

	// Comma separated, "*" allows any origin
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Matching policy
	MatchCoverage string `envconfig:"MATCH_COVERAGE" default:"full"`
	MatchPriority string `envconfig:"MATCH_PRIORITY" default:"urgency"`

	// Reset archive, disabled when the bucket is empty
	ArchiveBucket string `envconfig:"ARCHIVE_BUCKET"`
	ArchivePrefix string `envconfig:"ARCHIVE_PREFIX" default:"resets"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
)
