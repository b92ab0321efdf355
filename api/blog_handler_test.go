package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/google/uuid"
)

func addTestPost(t *testing.T, db database.Database, post *models.Post) *models.Post {
	t.Helper()
	if post.AuthorID == uuid.Nil {
		post.AuthorID = uuid.New()
	}
	if post.Content == "" {
		post.Content = "content"
	}
	if err := db.PostRepo().Add(post); err != nil {
		t.Fatalf("failed to add post %q: %v", post.Title, err)
	}
	return post
}

func TestBlogListShowsPublishedOnly(t *testing.T) {
	ts, db := newTestServer(t)

	now := time.Now().UTC()
	addTestPost(t, db, &models.Post{Title: "Visible", Status: models.StatusPublished, PublishedDate: &now})
	addTestPost(t, db, &models.Post{Title: "Hidden draft", Status: models.StatusDraft})
	future := now.Add(2 * time.Hour)
	addTestPost(t, db, &models.Post{Title: "Hidden scheduled", Status: models.StatusScheduled, PublishedDate: &future})

	var listing PostListResponse
	resp := doJSON(t, ts, http.MethodGet, "/blog", nil, nil, &listing)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(listing.Posts) != 1 || listing.Posts[0].Title != "Visible" {
		t.Fatalf("expected only the published post, got %d posts", len(listing.Posts))
	}
	if listing.Pagination.Total != 1 {
		t.Fatalf("expected total 1, got %d", listing.Pagination.Total)
	}
}

func TestBlogListPublishesDueScheduledPosts(t *testing.T) {
	ts, db := newTestServer(t)

	past := time.Now().UTC().Add(-time.Minute)
	post := addTestPost(t, db, &models.Post{Title: "Was scheduled", Status: models.StatusScheduled, PublishedDate: &past})

	var listing PostListResponse
	doJSON(t, ts, http.MethodGet, "/blog", nil, nil, &listing)

	if len(listing.Posts) != 1 || listing.Posts[0].Slug != post.Slug {
		t.Fatalf("elapsed scheduled post should be visible, got %d posts", len(listing.Posts))
	}

	reloaded, err := db.PostRepo().FindByID(post.ID)
	if err != nil {
		t.Fatalf("failed to reload post: %v", err)
	}
	if reloaded.Status != models.StatusPublished {
		t.Fatalf("expected published status after sweep, got %q", reloaded.Status)
	}
}

func TestBlogDetailIncrementsViews(t *testing.T) {
	ts, db := newTestServer(t)

	now := time.Now().UTC()
	post := addTestPost(t, db, &models.Post{Title: "Counted", Status: models.StatusPublished, PublishedDate: &now})

	var detail PostDetailResponse
	doJSON(t, ts, http.MethodGet, "/blog/"+post.Slug, nil, nil, &detail)
	doJSON(t, ts, http.MethodGet, "/blog/"+post.Slug, nil, nil, &detail)

	if detail.Post.ViewsCount != 2 {
		t.Fatalf("expected 2 views after two fetches, got %d", detail.Post.ViewsCount)
	}
	if detail.ReadingTime < 1 {
		t.Fatalf("reading time should be at least 1, got %d", detail.ReadingTime)
	}
}

func TestBlogDetailHidesDrafts(t *testing.T) {
	ts, db := newTestServer(t)

	post := addTestPost(t, db, &models.Post{Title: "Secret draft", Status: models.StatusDraft})

	resp := doJSON(t, ts, http.MethodGet, "/blog/"+post.Slug, nil, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("draft detail should 404, got %d", resp.StatusCode)
	}
}

func TestBlogUnknownCategoryIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/blog/category/no-such-category", nil, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category should 404, got %d", resp.StatusCode)
	}
}

func TestBlogUnknownTagIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/blog/tag/no-such-tag", nil, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown tag should 404, got %d", resp.StatusCode)
	}
}

func TestBlogCategoryFilter(t *testing.T) {
	ts, db := newTestServer(t)

	category := &models.Category{Name: "Systems"}
	if err := db.CategoryRepo().Add(category); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	now := time.Now().UTC()
	addTestPost(t, db, &models.Post{Title: "In category", Status: models.StatusPublished, PublishedDate: &now, CategoryID: &category.ID})
	addTestPost(t, db, &models.Post{Title: "Outside", Status: models.StatusPublished, PublishedDate: &now})

	var listing PostListResponse
	doJSON(t, ts, http.MethodGet, "/blog/category/"+category.Slug, nil, nil, &listing)

	if len(listing.Posts) != 1 || listing.Posts[0].Title != "In category" {
		t.Fatalf("expected only the categorized post, got %d posts", len(listing.Posts))
	}
	if listing.SelectedCategory == nil || listing.SelectedCategory.ID != category.ID {
		t.Fatal("selected category should be echoed back")
	}
}

func TestBlogDetailRelatedAndPrevious(t *testing.T) {
	ts, db := newTestServer(t)

	category := &models.Category{Name: "Go"}
	if err := db.CategoryRepo().Add(category); err != nil {
		t.Fatalf("failed to add category: %v", err)
	}

	now := time.Now().UTC()
	earlier := now.Add(-time.Hour)
	first := addTestPost(t, db, &models.Post{Title: "Part one", Status: models.StatusPublished, PublishedDate: &earlier, CategoryID: &category.ID})
	second := addTestPost(t, db, &models.Post{
		Title: "Part two", Status: models.StatusPublished, PublishedDate: &now,
		CategoryID: &category.ID, PreviousPostID: &first.ID,
	})

	var detail PostDetailResponse
	doJSON(t, ts, http.MethodGet, "/blog/"+second.Slug, nil, nil, &detail)

	if detail.PreviousPost == nil || detail.PreviousPost.Slug != first.Slug {
		t.Fatalf("expected previous post %q, got %+v", first.Slug, detail.PreviousPost)
	}
	if len(detail.RelatedPosts) != 1 || detail.RelatedPosts[0].Slug != first.Slug {
		t.Fatalf("expected one related post in the same category, got %d", len(detail.RelatedPosts))
	}
}

func TestBlogSearchFilter(t *testing.T) {
	ts, db := newTestServer(t)

	now := time.Now().UTC()
	addTestPost(t, db, &models.Post{Title: "Caching strategies", Content: "redis and memcached", Status: models.StatusPublished, PublishedDate: &now})
	addTestPost(t, db, &models.Post{Title: "Unrelated", Content: "nothing here", Status: models.StatusPublished, PublishedDate: &now})

	var listing PostListResponse
	doJSON(t, ts, http.MethodGet, "/blog?search=Redis", nil, nil, &listing)

	if len(listing.Posts) != 1 || listing.Posts[0].Title != "Caching strategies" {
		t.Fatalf("expected one search match, got %d", len(listing.Posts))
	}
	if listing.SearchQuery != "Redis" {
		t.Fatalf("search query should be echoed back, got %q", listing.SearchQuery)
	}
}
