package agent

import (
	"bytes"
	"testing"
)

// TestWriteReadMessageRoundTrip checks a framed message survives a
// write/read cycle with its type and decoded payload intact.
func TestWriteReadMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	begin := BeginTick{ShipIndex: 7, Seed: 42, Class: 1, BudgetMillis: 5}

	if err := WriteMessage(&buf, MsgBeginTick, begin); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	msgType, body, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msgType != MsgBeginTick {
		t.Errorf("msgType = %d, want %d", msgType, MsgBeginTick)
	}

	var decoded BeginTick
	if err := DecodePayload(body, &decoded); err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if decoded != begin {
		t.Errorf("decoded = %+v, want %+v", decoded, begin)
	}
}

// TestWriteReadMessageNilPayload checks a message with no payload (e.g.
// MsgEndTick) round-trips with an empty body.
func TestWriteReadMessageNilPayload(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, MsgEndTick, nil); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	msgType, body, err := ReadMessage(&buf)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if msgType != MsgEndTick {
		t.Errorf("msgType = %d, want %d", msgType, MsgEndTick)
	}
	if len(body) != 0 {
		t.Errorf("body = %v, want empty", body)
	}
}

// TestReadMessageRejectsVersionMismatch checks a frame carrying a
// different protocol version is rejected rather than silently
// misinterpreted.
func TestReadMessageRejectsVersionMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMessage(&buf, MsgCall, Call{Method: "position"}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	raw := buf.Bytes()
	raw[0] = 0xFF // corrupt the version's low byte

	if _, _, err := ReadMessage(bytes.NewReader(raw)); err == nil {
		t.Error("expected a version mismatch error")
	}
}

// TestReadMessageRejectsOversizedFrame checks a claimed length over
// MaxMessageSize is rejected before attempting to read the body.
func TestReadMessageRejectsOversizedFrame(t *testing.T) {
	head := make([]byte, HeaderSize)
	head[0] = byte(ProtocolVersion)
	head[2] = MsgCall
	// Encode a length far beyond MaxMessageSize.
	head[4], head[5], head[6], head[7] = 0xFF, 0xFF, 0xFF, 0xFF

	if _, _, err := ReadMessage(bytes.NewReader(head)); err == nil {
		t.Error("expected an oversized-frame error")
	}
}
