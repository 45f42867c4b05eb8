// SPDX-License-Identifier: MPL-2.0

package events

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
)

// DefaultSubjectPrefix is prepended to the pipeline name to form the subject.
const DefaultSubjectPrefix = "mxbuilder.events"

// NATSSink publishes events as JSON to `<prefix>.<pipeline>`.
type NATSSink struct {
	conn   *nats.Conn
	prefix string
	owned  bool
}

// NewNATSSink publishes through an existing connection, which the caller
// keeps ownership of.
func NewNATSSink(conn *nats.Conn, prefix string) *NATSSink {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return &NATSSink{conn: conn, prefix: prefix}
}

// ConnectNATSSink dials url and returns a sink that closes the connection on
// Close.
func ConnectNATSSink(url, prefix string, opts ...nats.Option) (*NATSSink, error) {
	nc, err := nats.Connect(url, append([]nats.Option{nats.Name("mxbuilder")}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS at %s: %w", url, err)
	}
	s := NewNATSSink(nc, prefix)
	s.owned = true
	return s, nil
}

// Subject returns the subject e is published on.
func (s *NATSSink) Subject(e Event) string {
	return s.prefix + "." + string(e.Pipeline)
}

// Handle implements Sink.
func (s *NATSSink) Handle(e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.conn.Publish(s.Subject(e), body)
}

// Close flushes pending messages and, if the sink dialed the connection,
// closes it.
func (s *NATSSink) Close() error {
	err := s.conn.Flush()
	if s.owned {
		s.conn.Close()
	}
	return err
}
