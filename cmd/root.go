package cmd

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ob1-scout/ob1-scout/internal/dna"
	"github.com/ob1-scout/ob1-scout/internal/nlp"
	"github.com/ob1-scout/ob1-scout/internal/watch"
)

const (
	app = "ob1-scout"
)

type Config struct {
	Feed  *FeedConfig        `mapstructure:"feed"`
	Clubs []*dna.ClubProfile `mapstructure:"clubs"`
	Watch *WatchConfig       `mapstructure:"watch"`
	AI    *AIConfig          `mapstructure:"ai"`
}

type FeedConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
	Cache   *CacheConfig  `mapstructure:"cache"`
}

type CacheConfig struct {
	// Backend is one of memory, redis or none.
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	Redis   *RedisConfig  `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type WatchConfig struct {
	Profiles []*watch.Profile `mapstructure:"profiles"`
	SeenFile string           `mapstructure:"seen-file"`
	MinScore int              `mapstructure:"min-score"`
}

type AIConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Provider        string        `mapstructure:"provider"`
	HelpBelow       float64       `mapstructure:"help-below"`
	ReclassifyBelow float64       `mapstructure:"reclassify-below"`
	Gemini          *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ob1-scout scores football market opportunities against club needs",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range map[string]string{
		"feed.url":               "OB1_FEED_URL",
		"ai.gemini.api-key-file": "GEMINI_API_KEY_FILE",
	} {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ob1-scout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("feed", "", "feed url or local path (overrides feed.url)")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("feed.url", rootCmd.PersistentFlags().Lookup("feed"))
}

func initConfig() {
	if versionCmd.CalledAs() != "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Without an explicit --config a missing file is fine: env and flags may be enough.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	config.setDefaults()

	return config, nil
}

func (c *Config) setDefaults() {
	if c.Feed == nil {
		c.Feed = &FeedConfig{}
	}
	if c.Feed.Cache == nil {
		c.Feed.Cache = &CacheConfig{}
	}
	if c.Watch == nil {
		c.Watch = &WatchConfig{}
	}
	if c.AI == nil {
		c.AI = &AIConfig{}
	}
	if c.AI.HelpBelow <= 0 {
		c.AI.HelpBelow = nlp.DefaultHelpBelow
	}
	if c.AI.ReclassifyBelow <= 0 {
		c.AI.ReclassifyBelow = nlp.DefaultReclassifyBelow
	}
	if c.AI.Gemini == nil {
		c.AI.Gemini = &GeminiConfig{}
	}
	for _, club := range c.Clubs {
		if club != nil {
			club.Normalize()
		}
	}
}
