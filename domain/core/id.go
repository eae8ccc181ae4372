package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	SampleID  ID
	ResultID  ID
	AlertID   ID
	SessionID ID
	StationID ID
	ReportID  ID
)

// String conversions for domain IDs
func (id SampleID) String() string  { return ID(id).String() }
func (id ResultID) String() string  { return ID(id).String() }
func (id AlertID) String() string   { return ID(id).String() }
func (id SessionID) String() string { return ID(id).String() }
func (id StationID) String() string { return ID(id).String() }
func (id ReportID) String() string  { return ID(id).String() }

// ParseSampleID parses a string into SampleID
func ParseSampleID(s string) (SampleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("sample ID cannot be empty")
	}
	return SampleID(s), nil
}

// ParseResultID parses a string into ResultID
func ParseResultID(s string) (ResultID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("result ID cannot be empty")
	}
	return ResultID(s), nil
}

// ParseSessionID parses a string into SessionID
func ParseSessionID(s string) (SessionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("session ID cannot be empty")
	}
	return SessionID(s), nil
}

// ParseStationID parses a string into StationID
func ParseStationID(s string) (StationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("station ID cannot be empty")
	}
	return StationID(s), nil
}
