package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/defaults"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/scenes"
)

// scenesCmd represents the scenes command
var scenesCmd = &cobra.Command{
	Use:   "scenes",
	Short: "List the saved scene library",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := scenes.Load(configPath("scenes.path", ".lumina-scenes.yaml"))
		if err != nil {
			return fmt.Errorf("failed to load scene library: %w", err)
		}
		list := store.Scenes()
		if len(list) == 0 {
			fmt.Println("No saved scenes yet.")
			return nil
		}
		for _, sc := range list {
			marker := " "
			if sc.Favorite {
				marker = "*"
			}
			fmt.Printf("%s %-20s effect=%-10s colors=%s\n",
				marker, sc.Name, sc.EffectID, strings.Join(sc.Colors, ","))
		}
		if viper.GetBool("debug") {
			fmt.Printf("%d scenes, %d favorites\n", len(list), len(store.FavoriteNames()))
		}
		return nil
	},
}

// effectsCmd represents the effects command
var effectsCmd = &cobra.Command{
	Use:   "effects",
	Short: "List the available effects",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range defaults.Effects() {
			fmt.Printf("%-10s %-10s wled=%-3d motion=%s\n", e.ID, e.Name, e.WLEDID, e.Motion)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(effectsCmd)
}
