package config

import "time"

const (
	defaultLogFile           = "logs.log"
	defaultLogLevel          = "info"
	defaultLogFileMaxSize    = 20
	defaultLogFileMaxBackups = 3
	defaultLogFileMaxAge     = 28
	defaultLogCompress       = false
	defaultPort              = 5001
	defaultHost              = "0.0.0.0"
	defaultData              = "/var/opt/bookhive"
	defaultDSN               = defaultData + "/bookhive.db"

	defaultMaxPerSubject        = 200
	defaultFetchIntervalHours   = 24
	defaultSeedLimit            = 100
	defaultSearchCacheTTL       = 5 * time.Minute
	defaultSearchCacheSize      = 256
	defaultSearchMaxResults     = 20
	defaultUpstreamTimeout      = 10 * time.Second
	defaultOpenLibraryRateLimit = 1
)

// defaultSubjects mirrors the genre sweep the scheduler runs against the
// commercial catalog.
var defaultSubjects = []string{
	"fiction", "romance", "fantasy", "history", "science",
	"mystery", "thriller", "biography", "children", "self-help",
}

// Options is unmarshalled by viper, hence the mapstructure tags instead of
// json ones. See: https://pkg.go.dev/github.com/mitchellh/mapstructure#hdr-Field_Tags
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// DSN is the path of the sqlite database
	DSN string `mapstructure:"dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// Data is the directory to store data
	Data string `mapstructure:"data"`

	// GoogleBooksAPIKey is appended to commercial-catalog requests when set
	GoogleBooksAPIKey string `mapstructure:"google_books_api_key"`
	// Subjects is the list of genres the scheduler sweeps
	Subjects []string `mapstructure:"subjects"`
	// MaxPerSubject caps how many items one sweep ingests per subject
	MaxPerSubject int `mapstructure:"max_per_subject"`
	// FetchIntervalHours is the wall-clock gap between sweeps
	FetchIntervalHours int `mapstructure:"fetch_interval_hours"`
	// SeedLimit is how many works the startup seed pulls from the subjects API
	SeedLimit int `mapstructure:"seed_limit"`

	// SearchCacheTTL is how long a cached search result stays valid
	SearchCacheTTL time.Duration `mapstructure:"search_cache_ttl"`
	// SearchCacheSize bounds the number of cached queries
	SearchCacheSize int `mapstructure:"search_cache_size"`
	// SearchMaxResults caps the upstream fallback page size
	SearchMaxResults int `mapstructure:"search_max_results"`

	// UpstreamTimeout applies to every upstream HTTP call
	UpstreamTimeout time.Duration `mapstructure:"upstream_timeout"`
	// OpenLibraryRateLimit is requests per second against the subjects API
	OpenLibraryRateLimit int `mapstructure:"openlibrary_rate_limit"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:              defaultLogFile,
		LogLevel:             defaultLogLevel,
		LogFileMaxSize:       defaultLogFileMaxSize,
		LogFileMaxBackups:    defaultLogFileMaxBackups,
		LogFileMaxAge:        defaultLogFileMaxAge,
		LogCompress:          defaultLogCompress,
		DSN:                  defaultDSN,
		Port:                 defaultPort,
		Host:                 defaultHost,
		Data:                 defaultData,
		Subjects:             defaultSubjects,
		MaxPerSubject:        defaultMaxPerSubject,
		FetchIntervalHours:   defaultFetchIntervalHours,
		SeedLimit:            defaultSeedLimit,
		SearchCacheTTL:       defaultSearchCacheTTL,
		SearchCacheSize:      defaultSearchCacheSize,
		SearchMaxResults:     defaultSearchMaxResults,
		UpstreamTimeout:      defaultUpstreamTimeout,
		OpenLibraryRateLimit: defaultOpenLibraryRateLimit,
	}
	return Opts
}
