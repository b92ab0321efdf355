package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/agrimgupta/portfolio-blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const dashboardPath = "/admin/dashboard"

type adminHandler struct {
	responder  Responder
	logger     zerolog.Logger
	posts      *database.PostRepo
	categories *database.CategoryRepo
	tags       *database.TagRepo
	users      *database.UserRepo
	lifecycle  *services.Lifecycle
	sessions   *sessionManager
	media      *services.MediaStore
	validate   *validator.Validate
	perPage    int
}

func newAdminHandler(db database.Database, lifecycle *services.Lifecycle, sessions *sessionManager, media *services.MediaStore, perPage int) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		posts:      db.PostRepo(),
		categories: db.CategoryRepo(),
		tags:       db.TagRepo(),
		users:      db.UserRepo(),
		lifecycle:  lifecycle,
		sessions:   sessions,
		media:      media,
		validate:   validator.New(),
		perPage:    perPage,
	}
}

// login serves POST /admin/login. Failure messages deliberately
// distinguish an unknown username from a wrong password.
func (h adminHandler) login() http.HandlerFunc {
	type request struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	type response struct {
		Message  string `json:"message"`
		Redirect string `json:"redirect"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("username and password are required"))
			return
		}

		user, err := h.users.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("User not found. Please check your username."))
			return
		}
		if !user.CheckPassword(req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid password. Please try again."))
			return
		}

		if err := h.sessions.issue(w, user.ID); err != nil {
			h.responder.WriteError(w, errs.NewInternalError("failed to create session"))
			return
		}

		redirect := r.URL.Query().Get("next")
		if redirect == "" {
			redirect = dashboardPath
		}
		h.responder.WriteJSON(w, response{Message: "Login successful!", Redirect: redirect})
	}
}

// logout clears the admin session.
func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clear(w)
		h.responder.WriteJSON(w, map[string]string{"message": "You have been logged out"})
	}
}

// dashboard serves post counts by status and the summed view count.
func (h adminHandler) dashboard() http.HandlerFunc {
	type response struct {
		TotalPosts     int64 `json:"totalPosts"`
		PublishedPosts int64 `json:"publishedPosts"`
		DraftPosts     int64 `json:"draftPosts"`
		TotalViews     int64 `json:"totalViews"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		total, err := h.posts.CountByStatus("")
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		published, err := h.posts.CountByStatus(models.StatusPublished)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		drafts, err := h.posts.CountByStatus(models.StatusDraft)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "posts", err))
			return
		}
		views, err := h.posts.TotalViews()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("sum", "post views", err))
			return
		}

		h.responder.WriteJSON(w, response{
			TotalPosts:     total,
			PublishedPosts: published,
			DraftPosts:     drafts,
			TotalViews:     views,
		})
	}
}

// AdminPostListResponse is one page of the admin post listing with the
// applied filters echoed back.
type AdminPostListResponse struct {
	Posts        []*models.Post      `json:"posts"`
	Pagination   database.Pagination `json:"pagination"`
	StatusFilter string              `json:"statusFilter,omitempty"`
	SearchQuery  string              `json:"searchQuery,omitempty"`
	SortBy       string              `json:"sortBy"`
	SortOrder    string              `json:"sortOrder"`
}

// listPosts serves GET /admin/posts: every status, title search, and
// sortable by title, status, views or creation date.
func (h adminHandler) listPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.lifecycle.PublishDue(time.Now())

		query := r.URL.Query()
		sortBy := query.Get("sort")
		if sortBy == "" {
			sortBy = "created"
		}
		sortOrder := query.Get("order")
		if sortOrder == "" {
			sortOrder = "desc"
		}

		filter := database.PostFilter{
			Status:      query.Get("status"),
			TitleSearch: strings.TrimSpace(query.Get("search")),
			SortBy:      sortBy,
			SortOrder:   sortOrder,
			Page:        pageParam(query.Get("page")),
			PerPage:     h.perPage,
		}

		posts, pagination, err := h.posts.Find(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteJSON(w, AdminPostListResponse{
			Posts:        posts,
			Pagination:   pagination,
			StatusFilter: filter.Status,
			SearchQuery:  filter.TitleSearch,
			SortBy:       sortBy,
			SortOrder:    sortOrder,
		})
	}
}

// postRequest is a post create/update payload. Upload endpoints store
// files separately; this carries only the stored filenames.
type postRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Slug            string   `json:"slug"`
	Content         string   `json:"content" validate:"required"`
	Excerpt         string   `json:"excerpt"`
	CategoryID      string   `json:"categoryId"`
	Status          string   `json:"status"`
	ScheduledDate   string   `json:"scheduledDate"`
	PublishedDate   string   `json:"publishedDate"`
	VideoURL        string   `json:"videoUrl"`
	FeaturedImage   string   `json:"featuredImage"`
	VideoFile       string   `json:"videoFile"`
	MetaDescription string   `json:"metaDescription"`
	MetaKeywords    string   `json:"metaKeywords"`
	PreviousPostID  string   `json:"previousPostId"`
	Tags            []string `json:"tags"`
	ViewsCount      *int     `json:"viewsCount"`
}

// PostSaveResponse carries the saved post plus a warning when the
// requested status could not be honored and the post was downgraded.
type PostSaveResponse struct {
	Post    *models.Post `json:"post"`
	Warning string       `json:"warning,omitempty"`
}

func (h adminHandler) decodePostRequest(w http.ResponseWriter, r *http.Request) (*postRequest, bool) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
		return nil, false
	}
	if err := h.validate.Struct(req); err != nil {
		h.responder.WriteError(w, errs.NewValidationError("title", "title and content are required"))
		return nil, false
	}
	return &req, true
}

// applyPostRequest copies the scalar fields of the request onto the post
// and resolves references. It does not touch status, dates or tags.
func (h adminHandler) applyPostRequest(w http.ResponseWriter, post *models.Post, req *postRequest) bool {
	post.Title = req.Title
	if req.Slug != "" {
		post.Slug = req.Slug
	}
	post.Content = req.Content
	post.Excerpt = req.Excerpt
	post.VideoURL = req.VideoURL
	post.MetaDescription = req.MetaDescription
	post.MetaKeywords = req.MetaKeywords

	if req.CategoryID == "" {
		post.CategoryID = nil
	} else {
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("categoryId", "invalid category id"))
			return false
		}
		post.CategoryID = &categoryID
	}

	if req.PreviousPostID == "" {
		post.PreviousPostID = nil
	} else {
		previousID, err := uuid.Parse(req.PreviousPostID)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("previousPostId", "invalid previous post id"))
			return false
		}
		post.PreviousPostID = &previousID
	}

	// A replaced upload leaves no orphan behind.
	if req.FeaturedImage != "" && req.FeaturedImage != post.FeaturedImage {
		if post.FeaturedImage != "" {
			if err := h.media.Delete(services.MediaImage, post.FeaturedImage); err != nil {
				h.logger.Error().Err(err).Str("file", post.FeaturedImage).Msg("failed to remove replaced image")
			}
		}
		post.FeaturedImage = req.FeaturedImage
	}
	if req.VideoFile != "" && req.VideoFile != post.VideoFile {
		if post.VideoFile != "" {
			if err := h.media.Delete(services.MediaVideo, post.VideoFile); err != nil {
				h.logger.Error().Err(err).Str("file", post.VideoFile).Msg("failed to remove replaced video")
			}
		}
		post.VideoFile = req.VideoFile
	}

	return true
}

// resolveTags upserts the request's tag names into Tag rows.
func (h adminHandler) resolveTags(names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := h.tags.FindOrCreateByName(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// createPost serves POST /admin/posts.
func (h adminHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := h.decodePostRequest(w, r)
		if !ok {
			return
		}

		user := userFromCtx(r.Context())
		post := &models.Post{AuthorID: user.ID}
		if !h.applyPostRequest(w, post, req) {
			return
		}

		resolution := services.ResolveStatus(services.StatusInput{
			Status:        req.Status,
			ScheduledDate: req.ScheduledDate,
			PublishedDate: req.PublishedDate,
		}, nil, time.Now().UTC())
		post.Status = resolution.Status
		post.PublishedDate = resolution.PublishedDate

		if err := h.posts.Add(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}

		tags, err := h.resolveTags(req.Tags)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}
		if err := h.posts.ReplaceTags(post, tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post tags", err))
			return
		}
		post.Tags = tags

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, PostSaveResponse{Post: post, Warning: resolution.Warning})
	}
}

// getPost serves GET /admin/posts/{postID} for the edit form.
func (h adminHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.findPost(w, r)
		if !ok {
			return
		}
		h.responder.WriteJSON(w, post)
	}
}

// updatePost serves PUT /admin/posts/{postID}. The views counter may be
// overwritten with any non-negative value.
func (h adminHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.findPost(w, r)
		if !ok {
			return
		}

		req, ok := h.decodePostRequest(w, r)
		if !ok {
			return
		}
		if !h.applyPostRequest(w, post, req) {
			return
		}

		resolution := services.ResolveStatus(services.StatusInput{
			Status:        req.Status,
			ScheduledDate: req.ScheduledDate,
			PublishedDate: req.PublishedDate,
		}, post.PublishedDate, time.Now().UTC())
		post.Status = resolution.Status
		post.PublishedDate = resolution.PublishedDate

		if req.ViewsCount != nil && *req.ViewsCount >= 0 {
			post.ViewsCount = *req.ViewsCount
		}

		if err := h.posts.Update(post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
			return
		}

		tags, err := h.resolveTags(req.Tags)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}
		if err := h.posts.ReplaceTags(post, tags); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post tags", err))
			return
		}
		post.Tags = tags

		h.responder.WriteJSON(w, PostSaveResponse{Post: post, Warning: resolution.Warning})
	}
}

// deletePost serves DELETE /admin/posts/{postID}, removing the post's
// uploaded files with it.
func (h adminHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, ok := h.findPost(w, r)
		if !ok {
			return
		}

		if post.FeaturedImage != "" {
			if err := h.media.Delete(services.MediaImage, post.FeaturedImage); err != nil {
				h.logger.Error().Err(err).Str("file", post.FeaturedImage).Msg("failed to remove post image")
			}
		}
		if post.VideoFile != "" {
			if err := h.media.Delete(services.MediaVideo, post.VideoFile); err != nil {
				h.logger.Error().Err(err).Str("file", post.VideoFile).Msg("failed to remove post video")
			}
		}

		if err := h.posts.Delete(post.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "post", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"message": "Post deleted successfully!"})
	}
}

func (h adminHandler) findPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid post id"))
		return nil, false
	}

	post, err := h.posts.FindByID(postID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
		return nil, false
	}
	if post == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("post not found"))
		return nil, false
	}
	return post, true
}

// listCategories serves GET /admin/categories.
func (h adminHandler) listCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categories.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// createCategory serves POST /admin/categories.
func (h adminHandler) createCategory() http.HandlerFunc {
	type request struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("name", "category name is required"))
			return
		}

		category := &models.Category{Name: req.Name, Description: req.Description}
		if err := h.categories.Add(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory serves DELETE /admin/categories/{categoryID}; posts in
// the category survive with a cleared category reference.
func (h adminHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "categoryID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid category id"))
			return
		}

		category, err := h.categories.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		if category == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("category not found"))
			return
		}

		if err := h.categories.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "category", err))
			return
		}
		h.responder.WriteJSON(w, map[string]string{"message": "Category deleted successfully!"})
	}
}

// listTags serves GET /admin/tags.
func (h adminHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tags.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// createTag serves POST /admin/tags.
func (h adminHandler) createTag() http.HandlerFunc {
	type request struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewValidationError("name", "tag name is required"))
			return
		}

		tag := &models.Tag{Name: req.Name}
		if err := h.tags.Add(tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag serves DELETE /admin/tags/{tagID}.
func (h adminHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuid.Parse(chi.URLParam(r, "tagID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid tag id"))
			return
		}

		if err := h.tags.Delete(tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tag", err))
			return
		}
		h.responder.WriteJSON(w, map[string]string{"message": "Tag deleted successfully!"})
	}
}
