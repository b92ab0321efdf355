package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return New(db)
}

func addPost(t *testing.T, repo *PostRepo, post *models.Post) *models.Post {
	t.Helper()
	if post.AuthorID == uuid.Nil {
		post.AuthorID = uuid.New()
	}
	if post.Content == "" {
		post.Content = "content"
	}
	if err := repo.Add(post); err != nil {
		t.Fatalf("failed to add post %q: %v", post.Title, err)
	}
	return post
}

func TestFindPublishedOnlyExcludesDraftsAndScheduled(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	now := time.Now().UTC()
	addPost(t, repo, &models.Post{Title: "Published", Status: models.StatusPublished, PublishedDate: &now})
	addPost(t, repo, &models.Post{Title: "Draft", Status: models.StatusDraft})
	future := now.Add(time.Hour)
	addPost(t, repo, &models.Post{Title: "Scheduled", Status: models.StatusScheduled, PublishedDate: &future})

	posts, pagination, err := repo.Find(PostFilter{PublishedOnly: true, Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if len(posts) != 1 || posts[0].Title != "Published" {
		t.Fatalf("expected only the published post, got %d posts", len(posts))
	}
	if pagination.Total != 1 {
		t.Fatalf("expected total 1, got %d", pagination.Total)
	}
}

func TestFindPublishedOrderingNewestFirst(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	addPost(t, repo, &models.Post{Title: "Older", Status: models.StatusPublished, PublishedDate: &older})
	addPost(t, repo, &models.Post{Title: "Newer", Status: models.StatusPublished, PublishedDate: &newer})

	posts, _, err := repo.Find(PostFilter{PublishedOnly: true})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}

	if len(posts) != 2 || posts[0].Title != "Newer" || posts[1].Title != "Older" {
		t.Fatalf("expected newest first, got %v", []string{posts[0].Title, posts[1].Title})
	}
}

func TestFindPagination(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	now := time.Now().UTC()
	for i := 0; i < 8; i++ {
		date := now.Add(-time.Duration(i) * time.Hour)
		addPost(t, repo, &models.Post{
			Title:         "Post " + string(rune('A'+i)),
			Status:        models.StatusPublished,
			PublishedDate: &date,
		})
	}

	posts, pagination, err := repo.Find(PostFilter{PublishedOnly: true, Page: 1, PerPage: 6})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 6 {
		t.Fatalf("expected 6 posts on page 1, got %d", len(posts))
	}
	if pagination.Total != 8 || pagination.TotalPages != 2 {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}

	posts, _, err = repo.Find(PostFilter{PublishedOnly: true, Page: 2, PerPage: 6})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts on page 2, got %d", len(posts))
	}
}

func TestFindPublicSearchSpansContentAndExcerpt(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	now := time.Now().UTC()
	addPost(t, repo, &models.Post{Title: "First", Content: "All about Kubernetes operators", Status: models.StatusPublished, PublishedDate: &now})
	addPost(t, repo, &models.Post{Title: "Second", Content: "plain", Excerpt: "kubernetes at the edge", Status: models.StatusPublished, PublishedDate: &now})
	addPost(t, repo, &models.Post{Title: "Third", Content: "unrelated", Status: models.StatusPublished, PublishedDate: &now})

	posts, _, err := repo.Find(PostFilter{PublishedOnly: true, Search: "KUBERNETES"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(posts))
	}
}

func TestFindAdminTitleSearchIgnoresContent(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	addPost(t, repo, &models.Post{Title: "Docker notes", Status: models.StatusDraft})
	addPost(t, repo, &models.Post{Title: "Other", Content: "docker everywhere", Status: models.StatusDraft})

	posts, _, err := repo.Find(PostFilter{TitleSearch: "docker"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Docker notes" {
		t.Fatalf("admin search should match title only, got %d posts", len(posts))
	}
}

func TestFindAdminSortByViews(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	addPost(t, repo, &models.Post{Title: "Low", Status: models.StatusDraft, ViewsCount: 1})
	addPost(t, repo, &models.Post{Title: "High", Status: models.StatusDraft, ViewsCount: 100})

	posts, _, err := repo.Find(PostFilter{SortBy: "views", SortOrder: "asc"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if posts[0].Title != "Low" || posts[1].Title != "High" {
		t.Fatalf("expected ascending view order, got %v", []string{posts[0].Title, posts[1].Title})
	}

	posts, _, err = repo.Find(PostFilter{SortBy: "views", SortOrder: "desc"})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if posts[0].Title != "High" {
		t.Fatalf("expected descending view order, got %q first", posts[0].Title)
	}
}

func TestFindByTag(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	tag, err := db.TagRepo().FindOrCreateByName("golang")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	now := time.Now().UTC()
	tagged := addPost(t, repo, &models.Post{Title: "Tagged", Status: models.StatusPublished, PublishedDate: &now})
	addPost(t, repo, &models.Post{Title: "Untagged", Status: models.StatusPublished, PublishedDate: &now})
	if err := repo.ReplaceTags(tagged, []models.Tag{*tag}); err != nil {
		t.Fatalf("failed to tag post: %v", err)
	}

	posts, _, err := repo.Find(PostFilter{PublishedOnly: true, TagID: tag.ID})
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(posts) != 1 || posts[0].Title != "Tagged" {
		t.Fatalf("expected only the tagged post, got %d posts", len(posts))
	}
}

func TestDeletePostKeepsTags(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	tag, err := db.TagRepo().FindOrCreateByName("keep-me")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}

	post := addPost(t, repo, &models.Post{Title: "Doomed", Status: models.StatusDraft})
	if err := repo.ReplaceTags(post, []models.Tag{*tag}); err != nil {
		t.Fatalf("failed to tag post: %v", err)
	}

	if err := repo.Delete(post.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	gone, err := repo.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if gone != nil {
		t.Fatal("post should be deleted")
	}

	kept, err := db.TagRepo().FindBySlug(tag.Slug)
	if err != nil {
		t.Fatalf("FindBySlug failed: %v", err)
	}
	if kept == nil {
		t.Fatal("tag should survive post deletion")
	}
}

func TestCategoryDeleteClearsPostReferences(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	category := &models.Category{Name: "Dev"}
	if err := db.CategoryRepo().Add(category); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	post := addPost(t, repo, &models.Post{Title: "Categorized", Status: models.StatusDraft, CategoryID: &category.ID})

	if err := db.CategoryRepo().Delete(category.ID); err != nil {
		t.Fatalf("category delete failed: %v", err)
	}

	reloaded, err := repo.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("post should survive category deletion")
	}
	if reloaded.CategoryID != nil {
		t.Fatalf("category reference should be cleared, got %v", reloaded.CategoryID)
	}
}

func TestIncrementViews(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	post := addPost(t, repo, &models.Post{Title: "Counted", Status: models.StatusDraft})

	if err := repo.IncrementViews(post); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}
	if err := repo.IncrementViews(post); err != nil {
		t.Fatalf("IncrementViews failed: %v", err)
	}

	reloaded, err := repo.FindByID(post.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if reloaded.ViewsCount != 2 {
		t.Fatalf("expected 2 views, got %d", reloaded.ViewsCount)
	}
}

func TestFindOrCreateByNameIsExactMatch(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.TagRepo()

	first, err := repo.FindOrCreateByName("Go")
	if err != nil {
		t.Fatalf("FindOrCreateByName failed: %v", err)
	}
	again, err := repo.FindOrCreateByName("Go")
	if err != nil {
		t.Fatalf("FindOrCreateByName failed: %v", err)
	}
	if first.ID != again.ID {
		t.Fatal("same name should resolve to the same tag")
	}
}

func TestSlugDerivedOnSave(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.PostRepo()

	post := addPost(t, repo, &models.Post{Title: "My Great Post", Status: models.StatusDraft})
	if post.Slug != "my-great-post" {
		t.Fatalf("expected derived slug, got %q", post.Slug)
	}
}
