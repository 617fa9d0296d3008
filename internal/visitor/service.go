package visitor

import (
	"errors"
	"time"

	"github.com/Kyz7/beritablog/internal/database"
	"github.com/Kyz7/beritablog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VisitInput struct {
	IPAddress string `json:"ipAddress" validate:"required,ip"`
	Device    string `json:"device" validate:"max=100"`
	Browser   string `json:"browser" validate:"max=100"`
	OS        string `json:"os" validate:"max=100"`
}

// Record finds the visitor for in.IPAddress and appends a visit, or
// creates the row on a first visit. created reports which happened.
func Record(in VisitInput, at time.Time) (v *models.Visitor, created bool, err error) {
	v, err = appendVisit(in.IPAddress, at)
	if err == nil {
		return v, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	fresh := models.Visitor{
		IPAddress: in.IPAddress,
		Device:    in.Device,
		Browser:   in.Browser,
		OS:        in.OS,
	}
	if err := fresh.AppendVisit(at); err != nil {
		return nil, false, err
	}
	if err := database.DB.Create(&fresh).Error; err != nil {
		// lost a race with another first visit from the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			v, err = appendVisit(in.IPAddress, at)
			return v, false, err
		}
		return nil, false, err
	}
	return &fresh, true, nil
}

// appendVisit reads and rewrites the visit list under a row lock so
// concurrent visits from one address are all kept.
func appendVisit(ip string, at time.Time) (*models.Visitor, error) {
	var v models.Visitor
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("ip_address = ?", ip).First(&v).Error; err != nil {
			return err
		}
		if err := v.AppendVisit(at); err != nil {
			return err
		}
		return tx.Model(&v).Update("visit_time", v.VisitTime).Error
	})
	if err != nil {
		return nil, err
	}
	return &v, nil
}
