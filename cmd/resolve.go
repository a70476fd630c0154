package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/router"
)

const resolveTimeout = 30 * time.Second

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [command]",
	Short: "Resolve a natural-language lighting command",
	Long: `Resolve a natural-language request into a complete lighting command.

Examples:
  lumina resolve "turn off"
  lumina resolve "brightness to 40%"
  lumina resolve "make it red"
  lumina resolve "something festive for game day"
  lumina resolve "cozy and warm for a quiet evening"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		debug := viper.GetBool("debug")
		asJSON, _ := cmd.Flags().GetBool("json")

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		if debug {
			fmt.Printf("Resolving: %s\n", text)
		}
		res, err := p.router.Route(ctx, text, environment())
		if err != nil {
			return err
		}

		if asJSON {
			return printResultJSON(res)
		}
		printResult(res)
		return nil
	},
}

func init() {
	resolveCmd.Flags().Bool("json", false, "print the resolved result as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func printResult(res *router.Result) {
	if res.Fallback != nil {
		fmt.Println(res.Fallback.Apology)
		for _, s := range res.Fallback.Suggestions {
			fmt.Printf("  - %s\n", s)
		}
		return
	}

	if res.Reply != "" {
		fmt.Println(res.Reply)
	}

	switch res.Intent.Kind {
	case intent.KindPower:
		state := "on"
		if !res.Intent.Power.On {
			state = "off"
		}
		fmt.Printf("Power %s (%s tier, confidence %.2f)\n", state, res.Intent.Tier, res.Intent.Confidence)
	case intent.KindNavigate:
		fmt.Printf("Navigate to %s", res.Intent.Navigate.Route)
		if res.Intent.Navigate.Tab != "" {
			fmt.Printf(" (tab %s)", res.Intent.Navigate.Tab)
		}
		fmt.Println()
	case intent.KindUnknown:
		if res.Reply == "" {
			fmt.Println("I couldn't work out a lighting command from that.")
		}
	default:
		fmt.Printf("Intent: %s (%s tier, confidence %.2f)\n",
			res.Intent.Kind, res.Intent.Tier, res.Intent.Confidence)
	}

	if s := res.Suggestion; s != nil {
		hexes := make([]string, 0, len(s.Colors))
		for _, c := range s.Colors {
			hexes = append(hexes, "#"+c.Hex())
		}
		fmt.Printf("  colors:     %s (%s)\n", strings.Join(hexes, " "), s.Sources.Colors)
		fmt.Printf("  effect:     %s (%s)\n", s.EffectID, s.Sources.Effect)
		fmt.Printf("  brightness: %.0f%% (%s)\n", s.Brightness*100, s.Sources.Brightness)
		if s.Speed != nil {
			fmt.Printf("  speed:      %.0f%% (%s)\n", *s.Speed*100, s.Sources.Speed)
		}
		fmt.Printf("  zone:       %s (%s)\n", s.Zone, s.Sources.Zone)
		fmt.Printf("  confidence: %.2f\n", s.OverallConfidence())
	}
}

func printResultJSON(res *router.Result) error {
	out := map[string]any{
		"kind":       res.Intent.Kind,
		"tier":       res.Intent.Tier,
		"confidence": res.Intent.Confidence,
	}
	if res.Reply != "" {
		out["reply"] = res.Reply
	}
	if res.Fallback != nil {
		out["apology"] = res.Fallback.Apology
		out["suggestions"] = res.Fallback.Suggestions
	}
	if s := res.Suggestion; s != nil {
		hexes := make([]string, 0, len(s.Colors))
		for _, c := range s.Colors {
			hexes = append(hexes, c.Hex())
		}
		out["resolved"] = map[string]any{
			"colors":     hexes,
			"effect":     s.EffectID,
			"brightness": s.Brightness,
			"speed":      s.Speed,
			"zone":       s.Zone,
			"confidence": s.OverallConfidence(),
			"payload":    s.Payload.WLEDState(),
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
