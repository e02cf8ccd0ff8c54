package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is constructed once at startup and passed into every
// component as an explicit dependency. There are no package-level
// globals for configuration anywhere in this service.
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	App       AppConfig
	Scheduler SchedulerConfig
	Providers ProvidersConfig
	Scoring   ScoringWindowConfig
}

type DatabaseConfig struct {
	URL        string // abstracts SUPABASE_URL / a plain Postgres DSN
	Credential string // SUPABASE_SERVICE_KEY or SUPABASE_ANON_KEY
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
}

type ServerConfig struct {
	Host string
	Port string
}

type AppConfig struct {
	Environment string // development | staging | production
}

// SchedulerConfig holds the cron-like expressions for the three named
// jobs, overridable by environment variable, plus the master on/off
// switch.
type SchedulerConfig struct {
	Enabled                     bool
	DailyRiskUpdateSchedule     string
	WeeklyReportSchedule        string
	MonthlyTrendAnalysisSchedule string
	AdapterTimeout              time.Duration
	MaxConcurrentScorings       int
}

// ProvidersConfig carries the OSINT adapter credentials. A zero-value
// field means "not configured" and the corresponding adapter reports
// success=false with error "not configured" rather than failing the
// request; the exception is FBIAPIKey, which is optional, since the FBI
// adapter calls out without a key.
type ProvidersConfig struct {
	TruecallerInstallationID string
	NumverifyAPIKey          string
	FullContactAPIKey        string
	EmailRepAPIKey           string
	HIBPAPIKey               string
	OpenSanctionsAPIKey      string
	InterpolBaseURL          string
	FBIAPIKey                string
}

// ScoringWindowConfig bounds how much history scorers read.
type ScoringWindowConfig struct {
	MaxPaymentsPerLandlord      int
	MaxResponseTimeSamples      int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	adapterTimeoutSeconds, err := strconv.Atoi(getEnv("ADAPTER_TIMEOUT_SECONDS", "5"))
	if err != nil {
		adapterTimeoutSeconds = 5
	}

	maxConcurrentScorings, err := strconv.Atoi(getEnv("MAX_CONCURRENT_SCORINGS", "16"))
	if err != nil {
		maxConcurrentScorings = 16
	}

	enabled, err := strconv.ParseBool(getEnv("ENABLE_SCHEDULED_JOBS", "true"))
	if err != nil {
		enabled = true
	}

	return &Config{
		Database: DatabaseConfig{
			URL:        getEnv("SUPABASE_URL", ""),
			Credential: firstNonEmpty(getEnv("SUPABASE_SERVICE_KEY", ""), getEnv("SUPABASE_ANON_KEY", "")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "password"),
			Name:       getEnv("DB_NAME", "compliance_intel_db"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", "3003"),
		},
		App: AppConfig{
			Environment: getEnv("NODE_ENV", "development"),
		},
		Scheduler: SchedulerConfig{
			Enabled:                      enabled,
			DailyRiskUpdateSchedule:      getEnv("DAILY_RISK_UPDATE_SCHEDULE", "0 2 * * *"),
			WeeklyReportSchedule:         getEnv("WEEKLY_REPORT_SCHEDULE", "0 6 * * 1"),
			MonthlyTrendAnalysisSchedule: getEnv("MONTHLY_TREND_ANALYSIS_SCHEDULE", "0 4 1 * *"),
			AdapterTimeout:               time.Duration(adapterTimeoutSeconds) * time.Second,
			MaxConcurrentScorings:        maxConcurrentScorings,
		},
		Providers: ProvidersConfig{
			TruecallerInstallationID: getEnv("TRUECALLER_INSTALLATION_ID", ""),
			NumverifyAPIKey:          getEnv("NUMVERIFY_API_KEY", ""),
			FullContactAPIKey:        getEnv("FULLCONTACT_API_KEY", ""),
			EmailRepAPIKey:           getEnv("EMAILREP_API_KEY", ""),
			HIBPAPIKey:               getEnv("HIBP_API_KEY", ""),
			OpenSanctionsAPIKey:      getEnv("OPENSANCTIONS_API_KEY", ""),
			InterpolBaseURL:          getEnv("INTERPOL_BASE_URL", ""),
			FBIAPIKey:                getEnv("FBI_API_KEY", ""),
		},
		Scoring: ScoringWindowConfig{
			MaxPaymentsPerLandlord: 24,
			MaxResponseTimeSamples: 10,
		},
	}
}

// IsDevelopment checks if the app is in development mode. The CORS
// policy in cmd/server/main.go does not consult it: it allows every
// origin in every environment.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
