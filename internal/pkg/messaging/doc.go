// Package messaging publishes and consumes broker messages over NSQ or NATS
// behind one Publisher/Consumer API.
//
// Headers and an optional key ride along on both drivers: NATS carries them
// natively, NSQ inside a small envelope in front of the body. Handlers that
// panic are recovered and, with WithAutoAck, the message is nacked.
package messaging
