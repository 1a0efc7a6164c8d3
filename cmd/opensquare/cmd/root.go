package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/opensquare/vdf/config"
)

const (
	envPrefix             = "OPENSQUARE"
	defaultConfigFileName = "config.toml"
)

var (
	// Version is the version of the binary.
	Version string
	// Commit is the commit hash of the binary.
	Commit string

	defaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), ".opensquare")
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFileName)

	vip = viper.New()

	configFile  string
	logLevel    string
	testModulus bool

	cfg    config.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "opensquare",
	Short: "Prove and verify identity-bound delay function evaluations",
	Long: `opensquare evaluates the Wesolowski verifiable delay function over an RSA
group and produces proofs bound to a solver address. Proofs can be verified,
inspected and digested for the marketplace dispute protocol.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zapcore.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		if logger, err = newLogger(level); err != nil {
			return fmt.Errorf("failed to initialize zap logger: %w", err)
		}
		if cfg, err = loadConfig(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Commit)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	setFlags(rootCmd.PersistentFlags(), config.DefaultConfig())
}

func setFlags(flags *pflag.FlagSet, def config.Config) {
	flags.StringVar(&configFile, "config", defaultConfigFile, "path to configuration file")
	flags.StringVar(&logLevel, "log-level", zapcore.InfoLevel.String(), "log level (debug, info, warn, error, dpanic, panic, fatal)")
	flags.BoolVar(&testModulus, "test-modulus", false, "use the insecure 256-bit test modulus")

	// Public parameters. Names match the mapstructure tags of config.Config.
	flags.String("modulus", def.Modulus, "RSA modulus N, decimal or 0x-prefixed hex")
	flags.String("dst", def.DST, "domain separation tag of the challenge hashes")
	flags.Uint("mr-rounds", def.MillerRabinRounds, "number of Miller-Rabin rounds")
	flags.String("witness-policy", def.WitnessPolicy, "Miller-Rabin witness policy (seeded, table, fixed)")
	flags.Uint64("witness-base", def.WitnessBase, "base of the fixed witness policy")
	flags.String("witness-seed", def.WitnessSeed, "seed of the seeded witness policy")
	flags.Uint32("nonce-window", def.NonceWindow, "number of nonces searched for a prime challenge")
	flags.Uint64("max-t", def.MaxT, "largest accepted number of squarings")
	flags.Uint64("max-reference-t", def.MaxReferenceT, "largest T checked by the reference identity")
	flags.Bool("parallel-chains", def.ParallelChains, "evaluate both chains concurrently")
	flags.Bool("allow-insecure-modulus", def.AllowInsecureModulus, "accept moduli shorter than 2048 bits")

	if err := vip.BindPFlags(flags); err != nil {
		panic(err)
	}
}

func loadConfig() (config.Config, error) {
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if err := loadConfigFile(smutil.GetCanonicalPath(configFile)); err != nil {
		return config.Config{}, err
	}

	c := config.DefaultConfig()
	if err := vip.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if testModulus {
		c.Modulus = config.TestModulus
		c.AllowInsecureModulus = true
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

// loadConfigFile reads the config file if there is one. Only an explicitly
// chosen file is required to exist.
func loadConfigFile(fileLocation string) error {
	vip.SetConfigFile(fileLocation)
	err := vip.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
		if fileLocation == smutil.GetCanonicalPath(defaultConfigFile) {
			return nil
		}
	}
	return fmt.Errorf("failed to read config file: %w", err)
}

func newLogger(level zapcore.Level) (*zap.Logger, error) {
	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		// stdout carries command output.
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}
