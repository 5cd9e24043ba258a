// Package deactivate defines the command object driving entity deactivation:
// soft delete with optional one-hop cascade, or hard (physical) delete.
package deactivate

import (
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

// Strategy selects how an entity is removed.
type Strategy string

const (
	// StrategySoft deactivates the row in place (is_active=false, deleted_at set).
	StrategySoft Strategy = "soft"

	// StrategyHard physically deletes the row.
	StrategyHard Strategy = "hard"
)

// Cascade names the relations that must be deactivated together with the
// entity. Only direct relations are followed: each named relation is one hop,
// children of children are never touched.
type Cascade struct {
	Relations []string `json:"relations,omitempty"`
}

// Command describes a single deactivation request.
// The zero Strategy means soft; Cascade is only meaningful for soft deletes.
type Command struct {
	ID id.ID `json:"id"`

	Strategy Strategy `json:"strategy,omitempty"`

	Cascade Cascade `json:"cascade,omitempty"`

	// SkipRestrictions lists restriction names the caller wants bypassed.
	// Honored only for soft deletes, see CanSkipRestriction.
	SkipRestrictions []string `json:"skipRestrictions,omitempty"`
}

// NewCommand creates a soft-delete command for the given entity.
func NewCommand(entityID id.ID) Command {
	return Command{ID: entityID, Strategy: StrategySoft}
}

// NewHardCommand creates a hard-delete command for the given entity.
func NewHardCommand(entityID id.ID) Command {
	return Command{ID: entityID, Strategy: StrategyHard}
}

// Normalize applies defaults: an empty strategy becomes soft.
func (c *Command) Normalize() {
	if c.Strategy == "" {
		c.Strategy = StrategySoft
	}
}

// Validate checks the command invariants. An unknown strategy or a nil ID
// is a validation error.
func (c Command) Validate() error {
	if id.IsNil(c.ID) {
		return apperror.NewValidation("entity id is required").
			WithDetail("field", "id")
	}
	switch c.Strategy {
	case "", StrategySoft, StrategyHard:
	default:
		return apperror.NewValidation(fmt.Sprintf("unknown deactivation strategy: %s", c.Strategy)).
			WithDetail("field", "strategy").
			WithDetail("allowed", []string{string(StrategySoft), string(StrategyHard)})
	}
	return nil
}

// IsHard reports whether the command requests physical deletion.
func (c Command) IsHard() bool {
	return c.Strategy == StrategyHard
}

// CanSkipRestriction decides whether restriction checks may be bypassed:
// only when the caller explicitly named restrictions to skip AND the delete
// is reversible (soft). Hard deletes always enforce every restriction.
func CanSkipRestriction(skipList []string, strategy Strategy) bool {
	if len(skipList) == 0 {
		return false
	}
	if strategy == "" {
		strategy = StrategySoft
	}
	return strategy == StrategySoft
}

// Skips reports whether the named restriction is bypassed by this command.
func (c Command) Skips(restriction string) bool {
	if !CanSkipRestriction(c.SkipRestrictions, c.Strategy) {
		return false
	}
	for _, name := range c.SkipRestrictions {
		if name == restriction {
			return true
		}
	}
	return false
}
