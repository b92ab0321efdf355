package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post status values. A post is either invisible (draft), waiting on a
// future publish time (scheduled), or publicly visible (published). There
// is no archived state; posts are deleted or left published.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Post is a blog post.
//
// Invariants: status=published implies PublishedDate is set; a persisted
// scheduled post always carries a publish time that was in the future at
// save time (the save path downgrades to draft otherwise).
type Post struct {
	ID              uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title           string     `json:"title" db:"title" gorm:"type:text;not null"`
	Slug            string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	AuthorID        uuid.UUID  `json:"authorId" db:"author_id" gorm:"type:uuid;not null;index"`
	Content         string     `json:"content" db:"content" gorm:"type:text;not null"`
	Excerpt         string     `json:"excerpt,omitempty" db:"excerpt" gorm:"type:text"`
	FeaturedImage   string     `json:"featuredImage,omitempty" db:"featured_image" gorm:"type:text"`
	VideoURL        string     `json:"videoUrl,omitempty" db:"video_url" gorm:"type:text"`
	VideoFile       string     `json:"videoFile,omitempty" db:"video_file" gorm:"type:text"`
	CategoryID      *uuid.UUID `json:"categoryId,omitempty" db:"category_id" gorm:"type:uuid;index"`
	Category        *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID"`
	Status          string     `json:"status" db:"status" gorm:"type:text;not null;default:draft;index"`
	PublishedDate   *time.Time `json:"publishedDate,omitempty" db:"published_date"`
	CreatedDate     time.Time  `json:"createdDate" db:"created_date" gorm:"column:created_date;autoCreateTime"`
	UpdatedDate     time.Time  `json:"updatedDate" db:"updated_date" gorm:"column:updated_date;autoUpdateTime"`
	ViewsCount      int        `json:"viewsCount" db:"views_count" gorm:"not null;default:0"`
	MetaDescription string     `json:"metaDescription,omitempty" db:"meta_description" gorm:"type:text"`
	MetaKeywords    string     `json:"metaKeywords,omitempty" db:"meta_keywords" gorm:"type:text"`
	PreviousPostID  *uuid.UUID `json:"previousPostId,omitempty" db:"previous_post_id" gorm:"type:uuid"`
	PreviousPost    *Post      `json:"previousPost,omitempty" gorm:"foreignKey:PreviousPostID;references:ID"`

	// Tags are shared across posts; deleting a post leaves its tags alone.
	Tags []Tag `json:"tags,omitempty" gorm:"many2many:post_tags;"`
}

// BeforeSave assigns an ID on first save and derives the slug from the
// title when none was supplied.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return nil
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == StatusPublished
}

// ReadingTime estimates reading time in minutes at 200 words per minute,
// with a floor of one minute.
func (p *Post) ReadingTime() int {
	words := len(strings.Fields(p.Content))
	minutes := (words + 100) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
