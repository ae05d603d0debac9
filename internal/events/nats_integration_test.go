//go:build integration

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestIntegration_Publish(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("NATS_URL not set, skipping integration test")
	}

	pub, err := NewNATS(context.Background(), url, "", "moodlog.test", slog.Default())
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer pub.Close()

	sub, err := nats.Connect(url)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()

	received := make(chan AnalysisEvent, 1)
	_, err = sub.Subscribe("moodlog.test."+SubjectAnalysisCompleted, func(msg *nats.Msg) {
		var ev AnalysisEvent
		_ = json.Unmarshal(msg.Data, &ev)
		received <- ev
	})
	if err != nil {
		t.Fatal(err)
	}
	_ = sub.Flush()

	if err := pub.Publish(SubjectAnalysisCompleted, AnalysisEvent{ID: "abc", Mode: "weekly"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	select {
	case ev := <-received:
		if ev.ID != "abc" {
			t.Errorf("id = %q", ev.ID)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
