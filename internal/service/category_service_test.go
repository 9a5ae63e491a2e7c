package service

import (
	"errors"
	"testing"

	"github.com/yhdfc-next/internal/models"
	"github.com/yhdfc-next/internal/repository"
)

func TestCategoryServiceCreateAndConflicts(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))

	created, err := svc.Create(CategoryInput{Name: " Digital Crime ", ParentSlug: "Digital-Forensic"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Slug != "digital-crime" || created.ParentSlug != "digital-forensic" {
		t.Fatalf("unexpected category: %+v", created)
	}
	if _, err := svc.Create(CategoryInput{Name: "digital crime", Slug: "other"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate name want ErrCategoryExists, got %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Another", Slug: "digital-crime"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("duplicate slug want ErrSlugExists, got %v", err)
	}
	if _, err := svc.Create(CategoryInput{Name: "  "}); !errors.Is(err, ErrCategoryNameRequired) {
		t.Fatalf("blank name want ErrCategoryNameRequired, got %v", err)
	}

	// 更新自身时不与自己冲突
	updated, err := svc.Update(created.ID, CategoryInput{Name: "Digital Crime", Slug: "digital-crime", Description: "Cyber crime"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Description != "Cyber crime" {
		t.Fatalf("description not updated: %+v", updated)
	}

	list, err := svc.List("cyber")
	if err != nil || len(list) != 1 {
		t.Fatalf("search list: len=%d err=%v", len(list), err)
	}
}

func TestCategoryServiceDeleteBlockedByPosts(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	category, err := svc.Create(CategoryInput{Name: "Press"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	post := &models.Post{Title: "a", Slug: "a", Content: "x", CategoryID: category.ID}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("want ErrCategoryInUse, got %v", err)
	}
	if err := db.Delete(post).Error; err != nil {
		t.Fatalf("delete post failed: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryServiceTaxonomy(t *testing.T) {
	db := setupServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db))
	for _, input := range []CategoryInput{
		{Name: "Digital Forensic"},
		{Name: "Digital Crime", ParentSlug: "digital-forensic"},
		{Name: "Training"},
	} {
		if _, err := svc.Create(input); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	table, err := svc.Taxonomy()
	if err != nil {
		t.Fatalf("taxonomy failed: %v", err)
	}
	if _, ok := table.Lookup("digital-forensic", "digital-crime"); !ok {
		t.Fatalf("digital-crime should be mapped")
	}
	if got := table.URLForCategorySlug("training", "course"); got != "/training/course" {
		t.Fatalf("unexpected url: %s", got)
	}
}
