package models

import "time"

type ProgramModel struct {
	ID             uint   `gorm:"primarykey"`
	UUID           string `gorm:"uniqueIndex;not null;size:36"`
	Key            string `gorm:"uniqueIndex;not null;size:64"`
	Title          string `gorm:"not null;size:255"`
	OrganizationID uint   `gorm:"index;not null"`

	Organization OrganizationModel `gorm:"foreignKey:OrganizationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProgramModel) TableName() string {
	return "programs"
}
