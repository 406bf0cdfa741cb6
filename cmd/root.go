package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/cumenu/yemekhane/internal/utils"
	"github.com/cumenu/yemekhane/pkg/scraper"
	"github.com/cumenu/yemekhane/pkg/snapshot"
	"github.com/cumenu/yemekhane/pkg/storage"
	"github.com/cumenu/yemekhane/pkg/whttp"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yemekhane",
	Short: "University cafeteria menu scraper and snapshot browser.",
	Long: `yemekhane scrapes the Çukurova University cafeteria site, keeps dated
JSON snapshots of every month's menu and answers "what's for lunch"
queries from those snapshots, including per-dish calorie and
ingredient details.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yemekhane.yaml)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".yemekhane")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.yemekhane.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	viper.SetDefault("source.base_url", scraper.DefaultBaseURL)
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("data.keep", snapshot.DefaultKeep)
	viper.SetDefault("http.retries", 0)
	viper.SetDefault("http.timeout", "30s")
	viper.SetDefault("cache.path", "yemekhane.sqlite")
	viper.SetDefault("serve.addr", ":8080")

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

func newScraper() *scraper.Scraper {
	timeout, err := time.ParseDuration(viper.GetString("http.timeout"))
	if err != nil {
		timeout = 30 * time.Second
	}
	client := whttp.NewClient(viper.GetInt("http.retries"), timeout)
	return scraper.New(viper.GetString("source.base_url"), client)
}

func newStore() *snapshot.Store {
	return snapshot.NewStore(viper.GetString("data.dir"))
}

// openCache opens the meal detail cache. A broken cache degrades to
// scraping every time, it never blocks a command.
func openCache() *storage.DB {
	db, err := storage.Open(viper.GetString("cache.path"))
	if err != nil {
		utils.Log.Warnf("meal cache unavailable: %v", err)
		return nil
	}
	return db
}
