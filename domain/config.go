package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	MainNetwork = "mainnet"
	TestNetwork = "testnet"
)

var (
	ErrorInvalidNetwork           = fmt.Errorf("network must be equal to 'mainnet' or 'testnet' only")
	ErrorInvalidInitialSupply     = fmt.Errorf("initial_supply must be positive")
	ErrorInvalidQuorum            = fmt.Errorf("quorum_bps must be between 1 and 10000")
	ErrorInvalidApproval          = fmt.Errorf("approval_bps must be between 5000 and 9999")
	ErrorInvalidAttackProbability = fmt.Errorf("attack_probability must be between 0 and 1")
	ErrorInvalidLogLevel          = fmt.Errorf("invalid log level")

	ErrorInvalidVotingPeriod     = fmt.Errorf("invalid voting period")
	ErrorInvalidMonitorInterval  = fmt.Errorf("invalid time interval for flash loan monitor")
	ErrorInvalidOptimizeInterval = fmt.Errorf("invalid time interval for supply optimizer")
	ErrorInvalidSweepInterval    = fmt.Errorf("invalid time interval for proposal sweep")
	ErrorInvalidSnapshotInterval = fmt.Errorf("invalid time interval for snapshots")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	dbUri       string
	metricsAddr string
	network     string

	tokenSymbol        string
	initialSupply      int64
	requireTonProposer bool
	quorumBps          int64
	approvalBps        int64
	attackProbability  float64
	randomSeed         int64

	logLevel  zerolog.Level
	logFormat string

	votingPeriod     time.Duration
	monitorInterval  time.Duration
	optimizeInterval time.Duration
	sweepInterval    time.Duration
	snapshotInterval time.Duration
)

func setDefaults() {
	viper.SetDefault("network", MainNetwork)
	viper.SetDefault("token_symbol", "TKN")
	viper.SetDefault("initial_supply", 1_000_000_000)
	viper.SetDefault("require_ton_proposer", false)
	viper.SetDefault("quorum_bps", 1000)
	viper.SetDefault("approval_bps", 5000)
	viper.SetDefault("attack_probability", 0.05)
	viper.SetDefault("random_seed", 0)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("log_format", "console")
	viper.SetDefault("metrics_addr", ":9090")
	viper.SetDefault("voting_period", "168h")
	viper.SetDefault("monitor_interval", "60s")
	viper.SetDefault("optimizer_interval", "0s")
	viper.SetDefault("sweep_interval", "5m")
	viper.SetDefault("snapshot_interval", "5m")
}

// ReadConfig loads the configuration file, if any, and validates it. Missing
// files are tolerated so that defaults and environment variables still apply.
func ReadConfig(filePath string) error {
	setDefaults()

	if filePath != "" {
		viper.SetConfigFile(filePath)
	}
	viper.AutomaticEnv()

	if filePath != "" {
		if err := viper.ReadInConfig(); err != nil {
			log.Warn().Err(err).Msg("⚠️ failed reading config file")
		}
	}

	return initializeVariables()
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Database stuff
	dbUri = TrailingSlashRE.ReplaceAllString(strings.TrimSpace(viper.GetString("service_db_uri")), "")
	metricsAddr = strings.TrimSpace(viper.GetString("metrics_addr"))

	// Network stuff
	network = strings.TrimSpace(strings.ToLower(viper.GetString("network")))
	if network != MainNetwork && network != TestNetwork {
		return ErrorInvalidNetwork
	}

	// Token stuff
	tokenSymbol = strings.TrimSpace(viper.GetString("token_symbol"))
	initialSupply = viper.GetInt64("initial_supply")
	if initialSupply <= 0 {
		return ErrorInvalidInitialSupply
	}

	// Governance stuff
	requireTonProposer = viper.GetBool("require_ton_proposer")
	quorumBps = viper.GetInt64("quorum_bps")
	if quorumBps <= 0 || quorumBps > 10_000 {
		return ErrorInvalidQuorum
	}
	approvalBps = viper.GetInt64("approval_bps")
	if approvalBps < 5_000 || approvalBps >= 10_000 {
		return ErrorInvalidApproval
	}
	votingPeriod, err = parsePositiveDuration("voting_period")
	if err != nil {
		return ErrorInvalidVotingPeriod
	}

	// Risk stuff
	attackProbability = viper.GetFloat64("attack_probability")
	if attackProbability < 0 || attackProbability > 1 {
		return ErrorInvalidAttackProbability
	}
	randomSeed = viper.GetInt64("random_seed")

	// Logging stuff
	logLevel, err = zerolog.ParseLevel(strings.ToLower(viper.GetString("log_level")))
	if err != nil {
		return ErrorInvalidLogLevel
	}
	logFormat = strings.ToLower(strings.TrimSpace(viper.GetString("log_format")))

	//---------------------------------------------------------------
	// monitor interval
	monitorInterval, err = parsePositiveDuration("monitor_interval")
	if err != nil {
		return ErrorInvalidMonitorInterval
	}

	//---------------------------------------------------------------
	// optimizer interval, zero disables the scheduled optimizer
	optimizeInterval, err = time.ParseDuration(viper.GetString("optimizer_interval"))
	if err != nil || optimizeInterval < 0 {
		return ErrorInvalidOptimizeInterval
	}

	//---------------------------------------------------------------
	// sweep interval
	sweepInterval, err = parsePositiveDuration("sweep_interval")
	if err != nil {
		return ErrorInvalidSweepInterval
	}

	//---------------------------------------------------------------
	// snapshot interval
	snapshotInterval, err = parsePositiveDuration("snapshot_interval")
	if err != nil {
		return ErrorInvalidSnapshotInterval
	}

	return nil
}

func parsePositiveDuration(key string) (time.Duration, error) {
	value, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%v must be positive", key)
	}
	return value, nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetDbUri() string {
	return dbUri
}

func GetMetricsAddr() string {
	return metricsAddr
}

func GetNetwork() string {
	return network
}

func GetTokenSymbol() string {
	return tokenSymbol
}

func GetInitialSupply() int64 {
	return initialSupply
}

func GetRequireTonProposer() bool {
	return requireTonProposer
}

func GetQuorumBps() int64 {
	return quorumBps
}

func GetApprovalBps() int64 {
	return approvalBps
}

func GetAttackProbability() float64 {
	return attackProbability
}

func GetRandomSeed() int64 {
	return randomSeed
}

func GetLogLevel() zerolog.Level {
	return logLevel
}

func GetLogFormat() string {
	return logFormat
}

func GetVotingPeriod() time.Duration {
	return votingPeriod
}

func GetMonitorInterval() time.Duration {
	return monitorInterval
}

func GetOptimizeInterval() time.Duration {
	return optimizeInterval
}

func GetSweepInterval() time.Duration {
	return sweepInterval
}

func GetSnapshotInterval() time.Duration {
	return snapshotInterval
}

// -------------------------------------------------------------------
// Evaluating values

func IsTestNet() bool {
	return network == TestNetwork
}

func IsPersistent() bool {
	return dbUri != ""
}
