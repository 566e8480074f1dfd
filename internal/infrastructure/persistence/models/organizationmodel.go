package models

import "time"

type OrganizationModel struct {
	ID        uint   `gorm:"primarykey"`
	UUID      string `gorm:"uniqueIndex;not null;size:36"`
	Key       string `gorm:"uniqueIndex;not null;size:64"`
	Name      string `gorm:"not null;size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrganizationModel) TableName() string {
	return "organizations"
}
