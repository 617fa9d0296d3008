package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Visitor struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	IPAddress string         `gorm:"size:45;uniqueIndex;not null" json:"ipAddress"`
	Device    string         `gorm:"size:100" json:"device"`
	Browser   string         `gorm:"size:100" json:"browser"`
	OS        string         `gorm:"column:os;size:100" json:"os"`
	VisitTime datatypes.JSON `json:"visitTime"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (v *Visitor) VisitTimes() ([]time.Time, error) {
	if len(v.VisitTime) == 0 {
		return nil, nil
	}
	var times []time.Time
	if err := json.Unmarshal(v.VisitTime, &times); err != nil {
		return nil, err
	}
	return times, nil
}

// AppendVisit records another visit at t.
func (v *Visitor) AppendVisit(t time.Time) error {
	times, err := v.VisitTimes()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(append(times, t.UTC()))
	if err != nil {
		return err
	}
	v.VisitTime = datatypes.JSON(raw)
	return nil
}
