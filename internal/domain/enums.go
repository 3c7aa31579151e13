package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidLevel indicates a skill level outside Beginner/Intermediate/Advanced.
	ErrInvalidLevel = errors.New("invalid skill level")

	// ErrInvalidDuration indicates a non-positive amount or an unknown unit.
	ErrInvalidDuration = errors.New("invalid duration")
)

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Levels lists the accepted skill levels in ascending order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

// ParseLevel accepts a level name in any letter case.
func ParseLevel(s string) (Level, error) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(s), string(l)) {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

type DurationUnit string

const (
	UnitMinutes DurationUnit = "Minutes"
	UnitHours   DurationUnit = "Hours"
	UnitDays    DurationUnit = "Days"
	UnitWeeks   DurationUnit = "Weeks"
	UnitMonths  DurationUnit = "Months"
)

// DurationUnits lists the accepted units from shortest to longest.
var DurationUnits = []DurationUnit{UnitMinutes, UnitHours, UnitDays, UnitWeeks, UnitMonths}

// ParseDurationUnit accepts a unit name in any letter case, singular or plural.
func ParseDurationUnit(s string) (DurationUnit, error) {
	v := strings.TrimSpace(s)
	for _, u := range DurationUnits {
		if strings.EqualFold(v, string(u)) || strings.EqualFold(v+"s", string(u)) {
			return u, nil
		}
	}
	return "", fmt.Errorf("%w: unknown unit %q", ErrInvalidDuration, s)
}

// Duration is the target study time, e.g. 2 Weeks.
type Duration struct {
	Amount int
	Unit   DurationUnit
}

func NewDuration(amount int, unit DurationUnit) (Duration, error) {
	d := Duration{Amount: amount, Unit: unit}
	return d, d.Validate()
}

func (d Duration) Validate() error {
	if d.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %d", ErrInvalidDuration, d.Amount)
	}
	if _, err := ParseDurationUnit(string(d.Unit)); err != nil {
		return err
	}
	return nil
}

// String renders "2 Weeks".
func (d Duration) String() string {
	return fmt.Sprintf("%d %s", d.Amount, d.Unit)
}

// Compact renders "2Weeks", the form used in export filenames.
func (d Duration) Compact() string {
	return fmt.Sprintf("%d%s", d.Amount, d.Unit)
}

// StepGranularity reports whether the plan should be broken down by day or by week.
// Plans of a month or more are weekly; everything shorter is daily.
func (d Duration) StepGranularity() string {
	switch d.Unit {
	case UnitMonths:
		return "Week"
	case UnitWeeks:
		if d.Amount >= 4 {
			return "Week"
		}
	case UnitDays:
		if d.Amount > 30 {
			return "Week"
		}
	}
	return "Day"
}
