// Package messaging provides a broker-agnostic API for publishing and
// consuming messages.
//
// Drivers exist for NATS, NSQ, Kafka, Google Pub/Sub and an in-process memory
// broker. Use cases depend on Publisher or Consumer only, so the broker is a
// configuration choice.
package messaging
