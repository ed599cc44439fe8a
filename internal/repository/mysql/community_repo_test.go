package mysql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"Lee_Directory/internal/model"
	"Lee_Directory/internal/repository/mysql"
	"Lee_Directory/internal/testutil"
)

func TestCommunityRepository_CreateAndFind(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := &mysql.CommunityRepository{DB: db}
	ctx := context.Background()

	c := &model.Community{Name: "Acme", Slug: "acme"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == "" {
		t.Fatalf("id not generated")
	}

	got, err := repo.FindBySlug(ctx, "acme")
	if err != nil || got.ID != c.ID {
		t.Fatalf("find by slug: %v %+v", err, got)
	}
	if _, err := repo.FindByID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	exists, err := repo.SlugExists(ctx, "acme")
	if err != nil || !exists {
		t.Fatalf("slug exists: %v %v", exists, err)
	}
	exists, _ = repo.SlugExists(ctx, "acme-1")
	if exists {
		t.Fatalf("acme-1 should be free")
	}
}

func TestCommunityRepository_DuplicateSlug(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := &mysql.CommunityRepository{DB: db}
	ctx := context.Background()

	if err := repo.Create(ctx, &model.Community{Name: "A", Slug: "dup"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &model.Community{Name: "B", Slug: "dup"})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestCommunityRepository_ListWithCountsAndUpdate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := &mysql.CommunityRepository{DB: db}
	ctx := context.Background()

	a := testutil.SeedCommunity(t, db, "A", "a", nil)
	testutil.SeedCommunity(t, db, "B", "b", nil)
	testutil.SeedMember(t, db, a.ID, "m1", "x", "y", time.Time{})
	testutil.SeedMember(t, db, a.ID, "m2", "x", "y", time.Time{})

	list, err := repo.ListWithCounts(ctx)
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	counts := map[string]int64{}
	for _, c := range list {
		counts[c.Slug] = c.MemberCount
	}
	if counts["a"] != 2 || counts["b"] != 0 {
		t.Fatalf("member counts: %v", counts)
	}

	if err := repo.Update(ctx, a.ID, map[string]any{"name": "A2", "access_code": "abc123"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.FindByID(ctx, a.ID)
	if got.Name != "A2" || got.AccessCode == nil || *got.AccessCode != "abc123" || got.Slug != "a" {
		t.Fatalf("update not applied: %+v", got)
	}
}

func TestCommunityRepository_DeleteCascade(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := &mysql.CommunityRepository{DB: db}
	members := &mysql.MemberRepository{DB: db}
	ctx := context.Background()

	a := testutil.SeedCommunity(t, db, "A", "a", nil)
	b := testutil.SeedCommunity(t, db, "B", "b", nil)
	for i := 0; i < 3; i++ {
		testutil.SeedMember(t, db, a.ID, "m", "x", "y", time.Time{})
	}
	testutil.SeedMember(t, db, b.ID, "other", "x", "y", time.Time{})

	removed, err := repo.DeleteCascade(ctx, a.ID)
	if err != nil || removed != 3 {
		t.Fatalf("delete cascade: removed=%d err=%v", removed, err)
	}
	n, _ := members.CountByCommunity(ctx, a.ID)
	if n != 0 {
		t.Fatalf("orphans left: %d", n)
	}
	n, _ = members.CountByCommunity(ctx, b.ID)
	if n != 1 {
		t.Fatalf("other community touched: %d", n)
	}

	if _, err := repo.DeleteCascade(ctx, a.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
