// Package bridge publishes finalized device payloads to the ESP32 MQTT
// bridge, which forwards them to the LED controller over its local
// network. Topics follow the bridge firmware: lumina/{deviceId}/command
// for commands, lumina/{deviceId}/status for replies.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/Nex-GenLED/Nex-Gen-Lumina-sub002/internal/intent"
)

const (
	connectTimeout = 10 * time.Second
	publishQoS     = 1
)

// Config carries broker settings, normally read from viper.
type Config struct {
	BrokerURL string // tls://host:8883
	Username  string
	Password  string
	DeviceID  string
	ClientID  string
}

// Sink is the MQTT device payload sink.
type Sink struct {
	client   mqtt.Client
	deviceID string
	log      *zap.Logger
}

// commandEnvelope is the message shape the bridge firmware expects.
type commandEnvelope struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload"`
}

// statusMessage is what the bridge publishes back after forwarding.
type statusMessage struct {
	Error string `json:"error,omitempty"`
}

// NewSink connects to the broker.
func NewSink(cfg Config, log *zap.Logger) (*Sink, error) {
	if cfg.BrokerURL == "" || cfg.DeviceID == "" {
		return nil, fmt.Errorf("bridge broker url and device id are required")
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "lumina-core-" + cfg.DeviceID
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(clientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetConnectTimeout(connectTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("timed out connecting to broker %s", cfg.BrokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to broker %s: %w", cfg.BrokerURL, err)
	}
	return &Sink{client: client, deviceID: cfg.DeviceID, log: log}, nil
}

// Close disconnects from the broker.
func (s *Sink) Close() {
	s.client.Disconnect(250)
}

func (s *Sink) commandTopic() string { return fmt.Sprintf("lumina/%s/command", s.deviceID) }
func (s *Sink) statusTopic() string  { return fmt.Sprintf("lumina/%s/status", s.deviceID) }

// Apply publishes a payload and waits for one status message from the
// bridge. Accepted means the bridge forwarded the state without error;
// a context deadline bounds the wait.
func (s *Sink) Apply(ctx context.Context, payload *intent.DevicePayload) (bool, error) {
	env := commandEnvelope{
		Action:  "setState",
		Payload: payload.WLEDState(),
	}
	body, err := json.Marshal(env)
	if err != nil {
		return false, fmt.Errorf("failed to encode command: %w", err)
	}

	statusCh := make(chan statusMessage, 1)
	token := s.client.Subscribe(s.statusTopic(), publishQoS, func(_ mqtt.Client, msg mqtt.Message) {
		var st statusMessage
		_ = json.Unmarshal(msg.Payload(), &st)
		select {
		case statusCh <- st:
		default:
		}
	})
	if !token.WaitTimeout(connectTimeout) || token.Error() != nil {
		return false, fmt.Errorf("failed to subscribe to status topic: %v", token.Error())
	}
	defer s.client.Unsubscribe(s.statusTopic())

	s.log.Debug("publishing device payload",
		zap.String("topic", s.commandTopic()),
		zap.Int("brightness", payload.Brightness),
		zap.Int("effect", payload.EffectID))

	pub := s.client.Publish(s.commandTopic(), publishQoS, false, body)
	if !pub.WaitTimeout(connectTimeout) {
		return false, fmt.Errorf("timed out publishing command")
	}
	if err := pub.Error(); err != nil {
		return false, fmt.Errorf("failed to publish command: %w", err)
	}

	select {
	case st := <-statusCh:
		if st.Error != "" {
			return false, fmt.Errorf("bridge rejected command: %s", st.Error)
		}
		return true, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			// Published but unacknowledged; the bridge may still apply it.
			return false, nil
		}
		return false, ctx.Err()
	}
}
