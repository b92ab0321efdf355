package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/agrimgupta/portfolio-blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder  Responder
	logger     zerolog.Logger
	posts      *database.PostRepo
	categories *database.CategoryRepo
	tags       *database.TagRepo
	lifecycle  *services.Lifecycle
	perPage    int
}

func newBlogHandler(posts *database.PostRepo, categories *database.CategoryRepo, tags *database.TagRepo, lifecycle *services.Lifecycle, perPage int) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		posts:      posts,
		categories: categories,
		tags:       tags,
		lifecycle:  lifecycle,
		perPage:    perPage,
	}
}

// PostSummary is the listing representation of a post.
type PostSummary struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Slug          string           `json:"slug"`
	Excerpt       string           `json:"excerpt,omitempty"`
	FeaturedImage string           `json:"featuredImage,omitempty"`
	PublishedDate *time.Time       `json:"publishedDate,omitempty"`
	ViewsCount    int              `json:"viewsCount"`
	ReadingTime   int              `json:"readingTime"`
	Category      *models.Category `json:"category,omitempty"`
	Tags          []models.Tag     `json:"tags,omitempty"`
}

func newPostSummary(p *models.Post) PostSummary {
	return PostSummary{
		ID:            p.ID.String(),
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		PublishedDate: p.PublishedDate,
		ViewsCount:    p.ViewsCount,
		ReadingTime:   p.ReadingTime(),
		Category:      p.Category,
		Tags:          p.Tags,
	}
}

func newPostSummaries(posts []*models.Post) []PostSummary {
	summaries := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, newPostSummary(p))
	}
	return summaries
}

// PostListResponse is one page of published posts with the filter context
// needed to render the listing.
type PostListResponse struct {
	Posts            []PostSummary       `json:"posts"`
	Pagination       database.Pagination `json:"pagination"`
	Categories       []*models.Category  `json:"categories"`
	Tags             []*models.Tag       `json:"tags"`
	SelectedCategory *models.Category    `json:"selectedCategory,omitempty"`
	SelectedTag      *models.Tag         `json:"selectedTag,omitempty"`
	SearchQuery      string              `json:"searchQuery,omitempty"`
}

// PostDetailResponse is the detail page payload.
type PostDetailResponse struct {
	Post          *models.Post  `json:"post"`
	ReadingTime   int           `json:"readingTime"`
	RelatedPosts  []PostSummary `json:"relatedPosts"`
	PreviousPost  *PostSummary  `json:"previousPost,omitempty"`
	VideoEmbedURL string        `json:"videoEmbedUrl,omitempty"`
}

// list serves GET /blog with optional page, category, tag and search
// parameters. Scheduled posts whose time has elapsed are published first.
func (h blogHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lifecycle.PublishDue(time.Now())

		query := r.URL.Query()
		filter := database.PostFilter{
			PublishedOnly: true,
			Page:          pageParam(query.Get("page")),
			PerPage:       h.perPage,
			Search:        query.Get("search"),
		}

		var selectedCategory *models.Category
		if slug := query.Get("category"); slug != "" {
			category, err := h.categories.FindBySlug(slug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
				return
			}
			if category == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
				return
			}
			selectedCategory = category
			filter.CategoryID = category.ID
		}

		var selectedTag *models.Tag
		if slug := query.Get("tag"); slug != "" {
			tag, err := h.tags.FindBySlug(slug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
				return
			}
			if tag == nil {
				h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
				return
			}
			selectedTag = tag
			filter.TagID = tag.ID
		}

		h.respondListing(w, filter, selectedCategory, selectedTag, filter.Search)
	}
}

// byCategory serves GET /blog/category/{slug}; unknown slugs are a 404.
func (h blogHandler) byCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lifecycle.PublishDue(time.Now())

		category, err := h.categories.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		filter := database.PostFilter{
			PublishedOnly: true,
			CategoryID:    category.ID,
			Page:          pageParam(r.URL.Query().Get("page")),
			PerPage:       h.perPage,
		}
		h.respondListing(w, filter, category, nil, "")
	}
}

// byTag serves GET /blog/tag/{slug}; unknown slugs are a 404.
func (h blogHandler) byTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lifecycle.PublishDue(time.Now())

		tag, err := h.tags.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		if tag == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("tag not found"))
			return
		}

		filter := database.PostFilter{
			PublishedOnly: true,
			TagID:         tag.ID,
			Page:          pageParam(r.URL.Query().Get("page")),
			PerPage:       h.perPage,
		}
		h.respondListing(w, filter, nil, tag, "")
	}
}

// detail serves GET /blog/{slug}. Each successful fetch increments the
// post's view counter.
func (h blogHandler) detail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lifecycle.PublishDue(time.Now())

		post, err := h.posts.FindBySlug(chi.URLParam(r, "slug"), true)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
			return
		}

		if err := h.posts.IncrementViews(post); err != nil {
			// Best-effort counter; the page still renders.
			h.logger.Error().Err(err).Str("slug", post.Slug).Msg("failed to increment view count")
		}

		related, err := h.posts.FindRelated(post, 3)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "related posts", err))
			return
		}

		response := PostDetailResponse{
			Post:          post,
			ReadingTime:   post.ReadingTime(),
			RelatedPosts:  newPostSummaries(related),
			VideoEmbedURL: services.VideoEmbedURL(post.VideoURL),
		}

		// A narrative sequence points back either through the stored
		// reference or an explicit prev query parameter.
		previous := post.PreviousPost
		if previous == nil {
			if prevSlug := r.URL.Query().Get("prev"); prevSlug != "" {
				previous, err = h.posts.FindBySlug(prevSlug, true)
				if err != nil {
					h.responder.WriteError(w, wrapDatabaseError("find", "previous post", err))
					return
				}
			}
		}
		if previous != nil {
			summary := newPostSummary(previous)
			response.PreviousPost = &summary
		}

		h.responder.WriteJSON(w, response)
	}
}

func (h blogHandler) respondListing(w http.ResponseWriter, filter database.PostFilter, category *models.Category, tag *models.Tag, search string) {
	posts, pagination, err := h.posts.Find(filter)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
		return
	}

	categories, err := h.categories.FindAll()
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
		return
	}

	tags, err := h.tags.FindAll()
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
		return
	}

	h.responder.WriteJSON(w, PostListResponse{
		Posts:            newPostSummaries(posts),
		Pagination:       pagination,
		Categories:       categories,
		Tags:             tags,
		SelectedCategory: category,
		SelectedTag:      tag,
		SearchQuery:      search,
	})
}

// pageParam parses a page query value, defaulting to 1.
func pageParam(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
