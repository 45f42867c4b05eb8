// SPDX-License-Identifier: MPL-2.0

package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

func startEmbeddedNATS(t *testing.T) string {
	t.Helper()

	var opts server.Options
	opts.ServerName = "mxbuilder-test"
	opts.Host = "127.0.0.1"
	opts.Port = -1
	opts.NoSigs = true
	opts.NoLog = true

	ns, err := server.NewServer(&opts)
	if err != nil {
		t.Fatalf("start NATS: %v", err)
	}
	ns.Start()
	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		t.Fatal("NATS not ready")
	}
	t.Cleanup(func() {
		ns.Shutdown()
		ns.WaitForShutdown()
	})
	return ns.ClientURL()
}

func TestNATSSink_PublishesPerPipelineSubject(t *testing.T) {
	t.Parallel()

	url := startEmbeddedNATS(t)

	sub, err := nats.Connect(url, nats.Name("mxbuilder-test-subscriber"))
	if err != nil {
		t.Fatalf("connect subscriber: %v", err)
	}
	defer sub.Close()

	msgs := make(chan *nats.Msg, 4)
	s, err := sub.ChanSubscribe("ci.mxbuilder.>", msgs)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer func() { _ = s.Unsubscribe() }()
	if err := sub.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	sink, err := ConnectNATSSink(url, "ci.mxbuilder")
	if err != nil {
		t.Fatalf("ConnectNATSSink() error = %v", err)
	}
	ev := Event{Seq: 7, RunID: "run-9", Pipeline: PipelinePush, Kind: KindStepStarted, Step: "Authenticate"}
	if err := sink.Handle(ev); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	select {
	case msg := <-msgs:
		if msg.Subject != "ci.mxbuilder.push" {
			t.Errorf("subject = %q, want ci.mxbuilder.push", msg.Subject)
		}
		var got Event
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Seq != 7 || got.RunID != "run-9" || got.Step != "Authenticate" {
			t.Errorf("decoded = %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestNATSSink_DefaultPrefix(t *testing.T) {
	t.Parallel()

	s := NewNATSSink(nil, "")
	if got := s.Subject(Event{Pipeline: PipelineBuild}); got != "mxbuilder.events.build" {
		t.Errorf("Subject() = %q", got)
	}
}

func TestConnectNATSSink_Unreachable(t *testing.T) {
	t.Parallel()

	if _, err := ConnectNATSSink("nats://127.0.0.1:1", "", nats.Timeout(200*time.Millisecond)); err == nil {
		t.Error("ConnectNATSSink() should fail for an unreachable server")
	}
}
