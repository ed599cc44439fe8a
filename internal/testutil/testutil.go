package testutil

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/repository/mysql"
)

// OpenTestDB 每个测试一个独立的内存 sqlite，并完成建表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := mysql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared&_foreign_keys=on", "silent")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := mysql.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SeedCommunity 直接写库，绕过 slug 分配
func SeedCommunity(t *testing.T, db *gorm.DB, name, slug string, accessCode *string) *model.Community {
	t.Helper()
	c := &model.Community{Name: name, Slug: slug, AccessCode: accessCode}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed community: %v", err)
	}
	return c
}

// SeedMember createdAt 为零值时由 gorm 填当前时间
func SeedMember(t *testing.T, db *gorm.DB, communityID, name, location, profession string, createdAt time.Time) *model.Member {
	t.Helper()
	m := &model.Member{
		CommunityID: communityID,
		Name:        name,
		Location:    location,
		Profession:  profession,
		CreatedAt:   createdAt,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func Ptr[T any](v T) *T {
	return &v
}
