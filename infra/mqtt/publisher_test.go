package mqtt

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/evfleet/demometrics/core/fleetstate"
	"github.com/evfleet/demometrics/core/model"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
func (t *fakeToken) Error() error { return t.err }

type fakeClient struct {
	connectErr error
	published  map[string][]byte
	publishErr error
}

func (c *fakeClient) IsConnected() bool { return true }
func (c *fakeClient) Connect() paho.Token {
	return &fakeToken{err: c.connectErr}
}
func (c *fakeClient) Disconnect(uint) {}
func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	if c.published == nil {
		c.published = map[string][]byte{}
	}
	c.published[topic] = payload.([]byte)
	return &fakeToken{err: c.publishErr}
}

func withFakeClient(t *testing.T, cli *fakeClient) {
	t.Helper()
	orig := newMQTTClient
	newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return cli }
	t.Cleanup(func() { newMQTTClient = orig })
}

func TestPahoPublisher_PublishSnapshot(t *testing.T) {
	cli := &fakeClient{}
	withFakeClient(t, cli)

	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883", TopicPrefix: "fleet/demo"})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	sn := fleetstate.Snapshot{
		Summary:   model.FleetSummary{TotalVehicles: 125, ActiveV2G: 40},
		Timestamp: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
	if err := pub.PublishSnapshot(sn); err != nil {
		t.Fatalf("publish: %v", err)
	}
	raw, ok := cli.published["fleet/demo/summary"]
	if !ok {
		t.Fatalf("nothing published: %v", cli.published)
	}
	var got fleetstate.Snapshot
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got.Summary.ActiveV2G != 40 {
		t.Fatalf("unexpected payload %#v", got)
	}
	pub.Close()
}

func TestPahoPublisher_ConnectError(t *testing.T) {
	withFakeClient(t, &fakeClient{connectErr: fmt.Errorf("broker down")})
	if _, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883"}); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestPahoPublisher_PublishError(t *testing.T) {
	cli := &fakeClient{publishErr: fmt.Errorf("publish refused")}
	withFakeClient(t, cli)
	pub, err := NewPahoPublisher(Config{Broker: "tcp://localhost:1883"})
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}
	if err := pub.PublishSnapshot(fleetstate.Snapshot{}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("disabled feed should validate: %v", err)
	}
	if err := (Config{Enabled: true}).Validate(); err == nil {
		t.Fatalf("enabled feed without broker should fail")
	}
	if err := (Config{Enabled: true, Broker: "tcp://x:1883"}).Validate(); err != nil {
		t.Fatalf("valid feed config rejected: %v", err)
	}
}
