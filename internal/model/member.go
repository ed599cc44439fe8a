package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	CommunityID string    `gorm:"size:36;not null;index:idx_member_community_time,priority:1" json:"communityId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Location    string    `gorm:"size:100;not null" json:"location"`
	Profession  string    `gorm:"size:100;not null" json:"profession"`
	CurrentWork *string   `gorm:"type:text" json:"currentWork"`
	ShareTopics *string   `gorm:"type:text" json:"shareTopics"`
	SeekTopics  *string   `gorm:"type:text" json:"seekTopics"`
	CreatedAt   time.Time `gorm:"index;index:idx_member_community_time,priority:2,sort:desc" json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Community *Community `gorm:"foreignKey:CommunityID" json:"community,omitempty"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
