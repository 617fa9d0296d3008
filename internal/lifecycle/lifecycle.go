// Package lifecycle implements the soft-delete state machine shared by
// categories, blogs, authors and ads.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type State string

const (
	Active  State = "active"
	Deleted State = "deleted"
)

var (
	ErrAlreadyDeleted = errors.New("record is already deleted")
	ErrNotDeleted     = errors.New("record is not deleted")
)

// Record is any model carrying a gorm.DeletedAt column.
type Record interface {
	IsDeleted() bool
}

// Policy controls what a delete of an already deleted row does.
type Policy struct {
	Name string
	// RestampDeleted lets Deleted -> Deleted succeed by refreshing
	// deleted_at instead of failing with ErrAlreadyDeleted.
	RestampDeleted bool
}

var (
	CategoryPolicy = Policy{Name: "category"}
	IklanPolicy    = Policy{Name: "iklan"}
	BlogPolicy     = Policy{Name: "blog", RestampDeleted: true}
	AuthorPolicy   = Policy{Name: "author", RestampDeleted: true}
)

var transitions = map[State]map[State]bool{
	Active:  {Deleted: true},
	Deleted: {Active: true},
}

func StateOf(r Record) State {
	if r.IsDeleted() {
		return Deleted
	}
	return Active
}

func Transition(from, to State, p Policy) error {
	if transitions[from][to] {
		return nil
	}

	switch {
	case from == Deleted && to == Deleted:
		if p.RestampDeleted {
			return nil
		}
		return ErrAlreadyDeleted
	case from == Active && to == Active:
		return ErrNotDeleted
	}
	return fmt.Errorf("invalid %s transition %s -> %s", p.Name, from, to)
}

// SoftDelete stamps deleted_at on the row with the given id. record is
// reloaded with the stored state on success. A missing row yields
// gorm.ErrRecordNotFound.
func SoftDelete(db *gorm.DB, record Record, id uint, p Policy) error {
	if err := db.Unscoped().First(record, id).Error; err != nil {
		return err
	}
	if err := Transition(StateOf(record), Deleted, p); err != nil {
		return err
	}

	if err := db.Unscoped().Model(record).Update("deleted_at", time.Now()).Error; err != nil {
		return err
	}
	return db.Unscoped().First(record, id).Error
}

// Restore clears deleted_at. Restoring a live row yields ErrNotDeleted.
func Restore(db *gorm.DB, record Record, id uint, p Policy) error {
	if err := db.Unscoped().First(record, id).Error; err != nil {
		return err
	}
	if err := Transition(StateOf(record), Active, p); err != nil {
		return err
	}

	if err := db.Unscoped().Model(record).Update("deleted_at", nil).Error; err != nil {
		return err
	}
	return db.Unscoped().First(record, id).Error
}

// Filter restricts tx to exactly one side of the lifecycle: the live rows,
// or with showDeleted the deleted ones.
func Filter(tx *gorm.DB, table string, showDeleted bool) *gorm.DB {
	tx = tx.Unscoped()
	if showDeleted {
		return tx.Where(table + ".deleted_at IS NOT NULL")
	}
	return tx.Where(table + ".deleted_at IS NULL")
}
