// internal/wire/wire.go
// Copyright(c) 2022-2026 skywatch contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package wire implements the controller<->jet channel protocol (§6): two
// fixed-size binary records, no framing delimiters. It is deliberately
// built on encoding/binary rather than a serialization library — see
// DESIGN.md for why nothing else fits a two-field fixed record better.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// CommandTag identifies a controller -> jet command.
type CommandTag uint32

const (
	CmdStartLanding CommandTag = 0
	CmdRefuel       CommandTag = 1
	CmdShutdown     CommandTag = 2
)

func (t CommandTag) String() string {
	switch t {
	case CmdStartLanding:
		return "StartLanding"
	case CmdRefuel:
		return "Refuel"
	case CmdShutdown:
		return "Shutdown"
	default:
		return fmt.Sprintf("CommandTag(%d)", uint32(t))
	}
}

// FeedbackTag identifies a jet -> controller feedback status.
type FeedbackTag uint32

const (
	FeedbackInQueue        FeedbackTag = 0 // unused on the wire
	FeedbackFuelLow        FeedbackTag = 1
	FeedbackEmergency      FeedbackTag = 2
	FeedbackLanded         FeedbackTag = 3
	FeedbackWaitingFuel    FeedbackTag = 4
	FeedbackLandingCmdSent FeedbackTag = 5 // unused on the wire
	FeedbackRefueling      FeedbackTag = 6
	FeedbackRefueled       FeedbackTag = 7
)

func (t FeedbackTag) String() string {
	switch t {
	case FeedbackInQueue:
		return "InQueue"
	case FeedbackFuelLow:
		return "FuelLow"
	case FeedbackEmergency:
		return "Emergency"
	case FeedbackLanded:
		return "Landed"
	case FeedbackWaitingFuel:
		return "WaitingFuel"
	case FeedbackLandingCmdSent:
		return "LandingCmdSent"
	case FeedbackRefueling:
		return "Refueling"
	case FeedbackRefueled:
		return "Refueled"
	default:
		return fmt.Sprintf("FeedbackTag(%d)", uint32(t))
	}
}

// Command is the fixed { u32 tag } record sent controller -> jet.
type Command struct {
	Tag CommandTag
}

// Feedback is the fixed { u32 tag, i32 data } record sent jet -> controller.
type Feedback struct {
	Tag  FeedbackTag
	Data int32
}

// WriteCommand writes a Command as its wire record.
func WriteCommand(w io.Writer, c Command) error {
	return binary.Write(w, binary.BigEndian, uint32(c.Tag))
}

// ReadCommand reads a Command wire record.
func ReadCommand(r io.Reader) (Command, error) {
	var tag uint32
	if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
		return Command{}, err
	}
	return Command{Tag: CommandTag(tag)}, nil
}

// WriteFeedback writes a Feedback as its wire record.
func WriteFeedback(w io.Writer, f Feedback) error {
	if err := binary.Write(w, binary.BigEndian, uint32(f.Tag)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, f.Data)
}

// ReadFeedback reads a Feedback wire record.
func ReadFeedback(r io.Reader) (Feedback, error) {
	var tag uint32
	if err := binary.Read(r, binary.BigEndian, &tag); err != nil {
		return Feedback{}, err
	}
	var data int32
	if err := binary.Read(r, binary.BigEndian, &data); err != nil {
		return Feedback{}, err
	}
	return Feedback{Tag: FeedbackTag(tag), Data: data}, nil
}
