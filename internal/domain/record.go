package domain

import (
	"strings"
	"time"
)

// Direction tells whether a vehicle came in or went out.
type Direction string

const (
	DirectionEntry Direction = "entry"
	DirectionExit  Direction = "exit"
)

// Valid reports whether d is one of the two allowed directions.
func (d Direction) Valid() bool {
	return d == DirectionEntry || d == DirectionExit
}

// MaxRecentRecords bounds every listing of movement records.
const MaxRecentRecords = 1000

// Record is one vehicle entry or exit event. AuthorName is copied from the
// author's session at write time and never follows later renames.
type Record struct {
	ID         int64
	Plate      string
	Driver     *string
	Direction  Direction
	EventAt    time.Time
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
}

// CreateRecordRequest holds the input for logging a movement.
// A nil EventAt means "now".
type CreateRecordRequest struct {
	Plate     string
	Driver    *string
	Direction Direction
	EventAt   *time.Time
}

// Validate normalizes the plate and checks the mandatory fields.
func (r *CreateRecordRequest) Validate() error {
	plate, err := normalizePlate(r.Plate)
	if err != nil {
		return err
	}
	r.Plate = plate
	r.Driver = normalizeDriver(r.Driver)
	if !r.Direction.Valid() {
		return ErrValidation("direction must be %q or %q", DirectionEntry, DirectionExit)
	}
	return nil
}

// UpdateRecordRequest is a full replacement of a record's event fields.
// Author fields and creation time are never changed.
type UpdateRecordRequest struct {
	Plate     string
	Driver    *string
	Direction Direction
	EventAt   *time.Time
}

// Validate normalizes the plate and checks the mandatory fields.
func (r *UpdateRecordRequest) Validate() error {
	plate, err := normalizePlate(r.Plate)
	if err != nil {
		return err
	}
	r.Plate = plate
	r.Driver = normalizeDriver(r.Driver)
	if !r.Direction.Valid() {
		return ErrValidation("direction must be %q or %q", DirectionEntry, DirectionExit)
	}
	if r.EventAt == nil || r.EventAt.IsZero() {
		return ErrValidation("timestamp is required")
	}
	return nil
}

// RecordStats summarizes the recent movement window.
type RecordStats struct {
	Total   int64 `json:"total"`
	Entries int64 `json:"entries"`
	Exits   int64 `json:"exits"`
}

func normalizePlate(plate string) (string, error) {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return "", ErrValidation("plate is required")
	}
	return plate, nil
}

func normalizeDriver(driver *string) *string {
	if driver == nil {
		return nil
	}
	d := strings.TrimSpace(*driver)
	if d == "" {
		return nil
	}
	return &d
}
