package round

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Status is the lifecycle phase of a round as broadcast by the round source
// Numbering matches the wire protocol (NotStarted = 1)
type Status uint8

const (
	StatusUnknown Status = iota
	StatusNotStarted
	StatusStarting
	StatusInProgress
	StatusOver
	StatusBlocking
	StatusRefunded
)

var statusNames = [...]string{
	StatusUnknown:    "Unknown",
	StatusNotStarted: "NotStarted",
	StatusStarting:   "Starting",
	StatusInProgress: "InProgress",
	StatusOver:       "Over",
	StatusBlocking:   "Blocking",
	StatusRefunded:   "Refunded",
}

var (
	ErrUnknownStatus = errors.New("unknown round status")
	ErrInvalidPayout = errors.New("invalid payout")
)

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Resets reports whether the view snaps back to the launch point under this status
// Every status except InProgress and Over is a reset status
func (s Status) Resets() bool {
	return s != StatusInProgress && s != StatusOver
}

// ParseStatus accepts the status name, case-insensitive
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if i == int(StatusUnknown) {
			continue
		}
		if strings.EqualFold(n, name) {
			return Status(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// MarshalJSON encodes the status as its wire number
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint8(s))
}

// UnmarshalJSON accepts either the wire number or the status name
func (s *Status) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n <= int(StatusUnknown) || n >= len(statusNames) {
			return fmt.Errorf("%w: %d", ErrUnknownStatus, n)
		}
		*s = Status(n)
		return nil
	}

	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("status must be number or string: %w", err)
	}
	parsed, err := ParseStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// State is one immutable snapshot of the externally supplied round status
type State struct {
	Status    Status
	Payout    float64
	StartTime time.Time
}

type wireState struct {
	Status    Status          `json:"status"`
	Payout    float64         `json:"payout"`
	StartTime json.RawMessage `json:"startTime"`
}

// UnmarshalJSON decodes startTime from epoch milliseconds or an RFC3339 string
func (st *State) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	start, err := decodeTime(w.StartTime)
	if err != nil {
		return fmt.Errorf("startTime: %w", err)
	}

	*st = State{Status: w.Status, Payout: w.Payout, StartTime: start}
	return nil
}

// MarshalJSON writes startTime as epoch milliseconds
func (st State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status    Status  `json:"status"`
		Payout    float64 `json:"payout"`
		StartTime int64   `json:"startTime"`
	}{st.Status, st.Payout, st.StartTime.UnixMilli()})
}

func decodeTime(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var ms float64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(int64(ms)), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, s)
}

// Decode parses and validates one JSON snapshot
func Decode(data []byte) (State, error) {
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decode round state: %w", err)
	}
	if err := st.Validate(); err != nil {
		return State{}, err
	}
	return st, nil
}

// Validate rejects snapshots that would produce degenerate geometry
// The engine does not validate; sources call this before pushing
func (st State) Validate() error {
	if st.Status == StatusUnknown || int(st.Status) >= len(statusNames) {
		return fmt.Errorf("%w: %d", ErrUnknownStatus, st.Status)
	}
	if math.IsNaN(st.Payout) || math.IsInf(st.Payout, 0) || st.Payout < 1 {
		return fmt.Errorf("%w: %v", ErrInvalidPayout, st.Payout)
	}
	return nil
}
