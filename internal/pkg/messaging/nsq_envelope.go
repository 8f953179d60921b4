package messaging

import (
	"bytes"
	"encoding/json"
)

// NSQ has no message headers, so headers travel in front of the body.
// Bodies without the prefix are delivered untouched.
var nsqEnvelopePrefix = []byte("\x1fnsqenv1\x1f")

type nsqEnvelope struct {
	Headers []Header `json:"headers"`
	Body    []byte   `json:"body"`
}

func encodeNSQBody(msg OutgoingMessage) ([]byte, error) {
	headers := outgoingHeaders(msg)
	if len(headers) == 0 {
		return msg.Body, nil
	}

	raw, err := json.Marshal(nsqEnvelope{Headers: headers, Body: msg.Body})
	if err != nil {
		return nil, err
	}

	return append(append([]byte{}, nsqEnvelopePrefix...), raw...), nil
}

func decodeNSQBody(raw []byte) ([]byte, []Header) {
	if !bytes.HasPrefix(raw, nsqEnvelopePrefix) {
		return raw, nil
	}

	var env nsqEnvelope
	if err := json.Unmarshal(raw[len(nsqEnvelopePrefix):], &env); err != nil {
		return raw, nil
	}

	return env.Body, env.Headers
}
