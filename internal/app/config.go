package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/evanrichards/tree-sorter-imports/internal/config"
)

const (
	configBaseName = ".tree-sorter-imports"
	configFileName = configBaseName + ".yaml"

	envPrefix = "TREE_SORTER"

	checkFlagName           = "check"
	fixFlagName             = "fix"
	writeFlagName           = "write"
	declarationSortFlagName = "declaration-sort"
	extensionsFlagName      = "extensions"
	excludeFlagName         = "exclude"
	workersFlagName         = "workers"
	formatFlagName          = "format"
	watchFlagName           = "watch"
	noCacheFlagName         = "no-cache"
	configFlagName          = "config"
	logFileFlagName         = "log-file"
	verboseFlagName         = "verbose"
	disableRuleFlagName     = "disable-rule"

	declarationSortKey = "rules.declaration_sort"
	disabledRulesKey   = "rules.disabled"
	extensionsKey      = "paths.extensions"
	excludeKey         = "paths.exclude"
	workersKey         = "run.workers"
	noCacheKey         = "run.no_cache"
	formatKey          = "output.format"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName(configBaseName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(declarationSortKey, string(config.DefaultSortMode))
	v.SetDefault(disabledRulesKey, []string{})
	v.SetDefault(extensionsKey, defaultExtensions)
	v.SetDefault(excludeKey, []string{})
	v.SetDefault(workersKey, 0)
	v.SetDefault(noCacheKey, false)
	v.SetDefault(formatKey, string(formatText))

	// Logging is off unless a log file is configured.
	v.SetDefault(logFilenameKey, "")
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	return v
}

// readConfig loads the config file. An explicit path must exist; the
// default file is optional.
func readConfig(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && path == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// ruleOptions builds the rule options from the merged configuration.
func ruleOptions(v *viper.Viper, fix bool) (config.RuleOptions, error) {
	mode, err := config.ParseSortMode(v.GetString(declarationSortKey))
	if err != nil {
		return config.RuleOptions{}, err
	}

	opts := config.RuleOptions{
		DeclarationSort: mode,
		Fix:             fix,
		DisabledRules:   v.GetStringSlice(disabledRulesKey),
	}
	return opts, opts.Validate()
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger builds the logger for a run. Without a log file logs are
// discarded; otherwise they go to a rotating file.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(v *viper.Viper, verbose bool) (*slog.Logger, io.Closer) {
	logPath := strings.TrimSpace(v.GetString(logFilenameKey))
	if logPath == "" {
		return slog.New(slog.DiscardHandler), io.NopCloser(nil)
	}

	logLevel := parseSlogLevel(v.GetString(logLevelKey), slog.LevelInfo)
	if verbose {
		logLevel = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    v.GetInt(logMaxSizeKey),
		MaxBackups: v.GetInt(logMaxBackupsKey),
		MaxAge:     v.GetInt(logMaxAgeKey),
		Compress:   v.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	return slog.New(handler), logWriter
}
