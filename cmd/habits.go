package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/habits"
)

const habitsTimeout = 30 * time.Second

// habitsCmd represents the habits command
var habitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Inspect and update learned lighting habits",
}

var habitsAnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Mine the last 30 days of usage into updated biases",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := context.WithTimeout(context.Background(), habitsTimeout)
		defer cancel()
		if err := p.tracker.AnalyzeAndSaveHabits(ctx); err != nil {
			return fmt.Errorf("habit analysis failed: %w", err)
		}
		fmt.Println("Habit analysis complete.")
		return nil
	},
}

var habitsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the currently learned biases",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := habits.OpenStore(configPath("habits.db", ".lumina-habits.db"))
		if err != nil {
			return fmt.Errorf("failed to open habits store: %w", err)
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(context.Background(), habitsTimeout)
		defer cancel()
		records, err := store.Habits(ctx, viper.GetString("user_id"), 32)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No habits learned yet.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%-18s %-12s value=%.3f samples=%d\n", r.Type, r.Bucket, r.Value, r.SampleCount)
		}
		return nil
	},
}

func init() {
	habitsCmd.AddCommand(habitsAnalyzeCmd)
	habitsCmd.AddCommand(habitsShowCmd)
	rootCmd.AddCommand(habitsCmd)
}
