package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "Natural-language control for permanent exterior LED lighting",
	Long: `Lumina turns plain-English requests into fully specified lighting
commands. Obvious phrases resolve locally and instantly; everything else
goes through the AI tier, and unstated parameters are filled in from
themes, time of day and your own usage history.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.lumina.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output (shows progress + internal diagnostics)")
	rootCmd.PersistentFlags().Float64("darkness", -1, "ambient darkness 0..1 (default estimated from the clock)")
	rootCmd.PersistentFlags().Bool("hoa-cap", false, "cap exterior brightness at 75%")

	// TODO: add error return here
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("darkness", rootCmd.PersistentFlags().Lookup("darkness"))
	viper.BindPFlag("hoa_cap", rootCmd.PersistentFlags().Lookup("hoa-cap"))

	viper.SetDefault("user_id", "default")
	viper.SetDefault("quiet_hours.start", "")
	viper.SetDefault("quiet_hours.end", "")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lumina")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}
