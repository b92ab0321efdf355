package database

import (
	"errors"
	"strings"

	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostFilter describes a post listing request. Zero values mean "no
// filter"; Page and PerPage default to 1 and 10.
type PostFilter struct {
	// PublishedOnly restricts the listing to publicly visible rows and
	// forces the public ordering (published_date desc, created_date desc).
	PublishedOnly bool
	Status        string
	CategoryID    uuid.UUID
	TagID         uuid.UUID
	// Search matches a case-insensitive substring across title, content
	// and excerpt.
	Search string
	// TitleSearch matches the title only (admin listing).
	TitleSearch string
	// SortBy is one of title, status, views, created; SortOrder is asc or
	// desc. Both are ignored when PublishedOnly is set.
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

var adminSortColumns = map[string]string{
	"title":   "title",
	"status":  "status",
	"views":   "views_count",
	"created": "created_date",
}

// Find returns one page of posts matching the filter, with tags and
// category preloaded, plus pagination metadata.
func (r *PostRepo) Find(filter PostFilter) ([]*models.Post, Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 {
		filter.PerPage = 10
	}

	q := r.db.Model(&models.Post{})

	if filter.PublishedOnly {
		q = q.Where("status = ?", models.StatusPublished)
	} else if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	if filter.CategoryID != uuid.Nil {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if filter.TagID != uuid.Nil {
		q = q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Where("post_tags.tag_id = ?", filter.TagID)
	}

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ?",
			pattern, pattern, pattern)
	}

	if filter.TitleSearch != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.TitleSearch)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	if filter.PublishedOnly {
		q = q.Order("published_date DESC, created_date DESC")
	} else {
		column, ok := adminSortColumns[filter.SortBy]
		if !ok {
			column = "created_date"
		}
		direction := "DESC"
		if strings.EqualFold(filter.SortOrder, "asc") {
			direction = "ASC"
		}
		q = q.Order(column + " " + direction)
	}

	var posts []*models.Post
	err := q.Preload("Tags").Preload("Category").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		Total:      total,
		TotalPages: int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage)),
	}
	return posts, pagination, nil
}

// FindBySlug returns a post by slug, or nil when no row matches.
// publishedOnly restricts the lookup to publicly visible posts.
func (r *PostRepo) FindBySlug(slug string, publishedOnly bool) (*models.Post, error) {
	q := r.db.Preload("Tags").Preload("Category").Preload("PreviousPost")
	if publishedOnly {
		q = q.Where("status = ?", models.StatusPublished)
	}
	var post models.Post
	err := q.Where("slug = ?", slug).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByID returns a post by its ID, or nil when no row matches.
func (r *PostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("Tags").Preload("Category").First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindScheduled returns all posts currently in scheduled status.
func (r *PostRepo) FindScheduled() ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.Where("status = ?", models.StatusScheduled).Find(&posts).Error
	return posts, err
}

// FindRelated returns up to limit published posts sharing the post's
// category, newest first, excluding the post itself.
func (r *PostRepo) FindRelated(post *models.Post, limit int) ([]*models.Post, error) {
	if post.CategoryID == nil {
		return nil, nil
	}
	var posts []*models.Post
	err := r.db.Where("category_id = ? AND status = ? AND id <> ?",
		*post.CategoryID, models.StatusPublished, post.ID).
		Order("published_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Add inserts a new post into the database
func (r *PostRepo) Add(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update updates an existing post in the database
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// UpdateStatus persists only the status column of one post.
func (r *PostRepo) UpdateStatus(id uuid.UUID, status string) error {
	return r.db.Model(&models.Post{}).Where("id = ?", id).Update("status", status).Error
}

// ReplaceTags replaces the post's tag set.
func (r *PostRepo) ReplaceTags(post *models.Post, tags []models.Tag) error {
	return r.db.Model(post).Association("Tags").Replace(tags)
}

// IncrementViews bumps the view counter by one. This is a read-then-write
// increment; concurrent readers of the same post may lose increments,
// which is acceptable for a best-effort counter.
func (r *PostRepo) IncrementViews(post *models.Post) error {
	post.ViewsCount++
	return r.db.Model(post).Update("views_count", post.ViewsCount).Error
}

// Delete removes a post from the database by id. Rows in post_tags go with
// it; the tags themselves stay.
func (r *PostRepo) Delete(id uuid.UUID) error {
	post := models.Post{ID: id}
	if err := r.db.Model(&post).Association("Tags").Clear(); err != nil {
		return err
	}
	return r.db.Delete(&post).Error
}

// CountByStatus counts posts, optionally restricted to one status.
func (r *PostRepo) CountByStatus(status string) (int64, error) {
	q := r.db.Model(&models.Post{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

// TotalViews sums views across all posts.
func (r *PostRepo) TotalViews() (int64, error) {
	var total int64
	err := r.db.Model(&models.Post{}).Select("COALESCE(SUM(views_count), 0)").Scan(&total).Error
	return total, err
}
