package config

import "time"

// Application constants
const (
	AppName   = "STP Flow Dashboard"
	EnvPrefix = "STP"

	// Plant defaults
	DefaultCapacityPerDay = 750.0 // m3/day
	DefaultSourceKind     = SourceEmbedded
	DefaultSheetName      = "Daily"
	DefaultSheetRange     = "Daily!A1:G"

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultHTTPTimeout = 30 * time.Second
	DatasetLoadTimeout = 20 * time.Second
	SheetsFetchTimeout = 15 * time.Second

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogFile   = "logs/stp.log"

	// API Endpoints
	APIBasePath     = "/api"
	STPBasePath     = "/api/stp"
	HealthEndpoint  = "/api/health"
	VersionEndpoint = "/api/version"
	MetricsEndpoint = "/metrics"
)

// Dataset source kinds
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceExcel    = "excel"
	SourceSheets   = "sheets"
)

// SourceKinds lists every supported dataset source kind.
var SourceKinds = []string{SourceEmbedded, SourceFile, SourceExcel, SourceSheets}
