package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/bridge"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/habits"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/router"
)

const applyStatusTimeout = 15 * time.Second

// applyCmd represents the apply command
var applyCmd = &cobra.Command{
	Use:   "apply [command]",
	Short: "Resolve a command and send it to the lights",
	Long: `Resolve a natural-language request and publish the resulting device
state to the MQTT bridge.

Examples:
  lumina apply "turn off"
  lumina apply "warm white at 40%"
  lumina apply "chiefs colors, game day energy"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		debug := viper.GetBool("debug")
		text := strings.Join(args, " ")

		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.close()

		ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
		defer cancel()

		env := environment()
		res, err := p.router.Route(ctx, text, env)
		if err != nil {
			return err
		}
		if res.Fallback != nil {
			printResult(res)
			return nil
		}

		payload, err := payloadFor(res)
		if err != nil {
			return err
		}

		adjustedPct, _ := cmd.Flags().GetInt("brightness")
		if adjustedPct >= 0 && adjustedPct <= 100 {
			payload.Brightness = int(float64(adjustedPct)*255.0/100.0 + 0.5)
		}

		sink, err := bridge.NewSink(bridge.Config{
			BrokerURL: viper.GetString("mqtt.broker"),
			Username:  viper.GetString("mqtt.username"),
			Password:  viper.GetString("mqtt.password"),
			DeviceID:  viper.GetString("mqtt.device_id"),
		}, p.log)
		if err != nil {
			return err
		}
		defer sink.Close()

		if debug {
			fmt.Printf("Publishing to device %s\n", viper.GetString("mqtt.device_id"))
		}
		applyCtx, applyCancel := context.WithTimeout(context.Background(), applyStatusTimeout)
		defer applyCancel()
		acked, err := sink.Apply(applyCtx, payload)
		if err != nil {
			return fmt.Errorf("failed to apply state: %w", err)
		}

		// Applying a suggestion unchanged counts as accepting it; an
		// overridden brightness counts as an adjustment. That history is
		// what the bias analysis mines later.
		if s := res.Suggestion; s != nil {
			snap := habits.ContextSnapshot{
				Darkness: env.Darkness,
				EffectID: s.EffectID,
				When:     time.Now().UTC(),
			}
			var recErr error
			if adjustedPct >= 0 && adjustedPct <= 100 {
				recErr = p.tracker.RecordAdjustment(ctx, "brightness", s.Brightness, float64(adjustedPct)/100.0, snap)
			} else {
				recErr = p.tracker.RecordAccepted(ctx, "brightness", s.Brightness, snap)
			}
			if recErr == nil {
				recErr = p.tracker.RecordAccepted(ctx, "effect", 0, snap)
			}
			if recErr != nil {
				p.log.Warn("failed to record usage event", zap.Error(recErr))
			}
		}

		printResult(res)
		if acked {
			fmt.Println("Applied (bridge acknowledged).")
		} else {
			fmt.Println("Published; no acknowledgement from the bridge.")
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().Int("brightness", -1, "override the resolved brightness (0-100 percent)")
	rootCmd.AddCommand(applyCmd)
}

// payloadFor picks the device state to publish. Enriched suggestions
// carry their own payload; power commands build a minimal one.
func payloadFor(res *router.Result) (*intent.DevicePayload, error) {
	if res.Suggestion != nil && res.Suggestion.Payload != nil {
		return res.Suggestion.Payload, nil
	}
	if res.Intent.Kind == intent.KindPower {
		on := res.Intent.Power.On
		return intent.NewDevicePayload(on, 128, 0, 0, nil), nil
	}
	return nil, fmt.Errorf("nothing to apply for a %s command", res.Intent.Kind)
}
