package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lumina configuration",
	Long:  `Configure lumina settings including the AI provider, quiet hours and the MQTT bridge.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration file",
	Long:  `Create a default configuration file in your home directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configPath := filepath.Join(home, ".lumina.yaml")

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			fmt.Printf("Configuration file already exists at %s\n", configPath)
			return nil
		}

		defaultConfig := `# Lumina Configuration
# Copy this to ~/.lumina.yaml and customize for your setup

user_id: default

# AI Providers Configuration
ai:
  provider: gemini-api

  providers:
    gemini:
      model: gemini-2.5-flash

    gemini-api:
      model: gemini-2.5-flash
      api_key: GEMINI_API_KEY   # literal key or the env var that holds it

    openai:
      model: gpt-5
      api_key: OPENAI_API_KEY
      base_url: https://api.openai.com/v1

# Prompt personalization
profile:
  location: Kansas City
  interests: [chiefs, royals]

# Ambient rules
quiet_hours:
  start: "22:30"
  end: "06:00"
hoa_cap: false

# Libraries and history
scenes:
  path: ""    # defaults to ~/.lumina-scenes.yaml
habits:
  db: ""      # defaults to ~/.lumina-habits.db

# MQTT bridge
mqtt:
  broker: tls://broker.local:8883
  username: ""
  password: ""
  device_id: lumina-01
`

		if err := os.WriteFile(configPath, []byte(defaultConfig), 0o600); err != nil {
			return fmt.Errorf("error writing config file: %w", err)
		}
		fmt.Printf("Created configuration file at %s\n", configPath)
		fmt.Println("Edit it to set your AI provider key and MQTT broker.")
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Printf("Config file: %s\n\n", f)
		} else {
			fmt.Println("No config file loaded (run `lumina config init`).")
		}

		fmt.Printf("user_id:            %s\n", viper.GetString("user_id"))
		fmt.Printf("ai.provider:        %s\n", viper.GetString("ai.provider"))
		fmt.Printf("profile.location:   %s\n", viper.GetString("profile.location"))
		fmt.Printf("quiet_hours:        %s - %s\n",
			viper.GetString("quiet_hours.start"), viper.GetString("quiet_hours.end"))
		fmt.Printf("hoa_cap:            %v\n", viper.GetBool("hoa_cap"))
		fmt.Printf("mqtt.broker:        %s\n", viper.GetString("mqtt.broker"))
		fmt.Printf("mqtt.device_id:     %s\n", viper.GetString("mqtt.device_id"))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
