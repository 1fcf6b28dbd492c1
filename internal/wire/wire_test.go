// internal/wire/wire_test.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package wire

import (
	"bytes"
	"io"
	"testing"
)

func TestCommandRoundTrip(t *testing.T) {
	for _, tag := range []CommandTag{CmdStartLanding, CmdRefuel, CmdShutdown} {
		var buf bytes.Buffer
		if err := WriteCommand(&buf, Command{Tag: tag}); err != nil {
			t.Fatalf("WriteCommand(%s): %v", tag, err)
		}
		if buf.Len() != 4 {
			t.Errorf("%s: wire size = %d, want 4", tag, buf.Len())
		}
		got, err := ReadCommand(&buf)
		if err != nil {
			t.Fatalf("ReadCommand(%s): %v", tag, err)
		}
		if got.Tag != tag {
			t.Errorf("round-trip tag = %s, want %s", got.Tag, tag)
		}
	}
}

func TestFeedbackRoundTrip(t *testing.T) {
	tests := []struct {
		tag  FeedbackTag
		data int32
	}{
		{FeedbackFuelLow, 20},
		{FeedbackEmergency, 7},
		{FeedbackLanded, 0},
		{FeedbackWaitingFuel, 25},
		{FeedbackRefueling, 12},
		{FeedbackRefueled, 87},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WriteFeedback(&buf, Feedback{Tag: tt.tag, Data: tt.data}); err != nil {
			t.Fatalf("WriteFeedback(%s): %v", tt.tag, err)
		}
		if buf.Len() != 8 {
			t.Errorf("%s: wire size = %d, want 8", tt.tag, buf.Len())
		}
		got, err := ReadFeedback(&buf)
		if err != nil {
			t.Fatalf("ReadFeedback(%s): %v", tt.tag, err)
		}
		if got.Tag != tt.tag || got.Data != tt.data {
			t.Errorf("round-trip = {%s %d}, want {%s %d}", got.Tag, got.Data, tt.tag, tt.data)
		}
	}
}

func TestReadCommandShortRead(t *testing.T) {
	_, err := ReadCommand(bytes.NewReader([]byte{0, 0}))
	if err == nil {
		t.Fatal("expected an error reading a truncated command")
	}
	if err != io.ErrUnexpectedEOF {
		t.Errorf("got err = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestFeedbackTagStringUnknown(t *testing.T) {
	s := FeedbackTag(99).String()
	if s == "" {
		t.Error("String() on an unrecognized tag should not be empty")
	}
}
