package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Community struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:100;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	AccessCode  *string   `gorm:"size:50" json:"accessCode"` // nil 表示公开
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// 只读派生字段，列表查询时由子查询填充
	MemberCount int64 `gorm:"->;-:migration" json:"memberCount"`

	Members []Member `gorm:"foreignKey:CommunityID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Community) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// IsGated 是否设置了访问码
func (c *Community) IsGated() bool {
	return c.AccessCode != nil && *c.AccessCode != ""
}
