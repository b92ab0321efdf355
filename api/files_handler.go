package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type filesHandler struct {
	responder Responder
	logger    zerolog.Logger
	media     *services.MediaStore
}

func newFilesHandler(media *services.MediaStore) filesHandler {
	logger := log.With().Str("handlerName", "filesHandler").Logger()

	return filesHandler{
		responder: NewResponder(logger),
		logger:    logger,
		media:     media,
	}
}

// serve handles GET /uploads/{fileType}/{filename}. PDFs are always sent
// as attachments; a PDF requested from the images folder is also looked
// up in the resumes folder, where older uploads may live.
func (h filesHandler) serve() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileType := chi.URLParam(r, "fileType")
		filename := filepath.Base(chi.URLParam(r, "filename"))

		dir, ok := h.media.DirByName(fileType)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("invalid file type"))
			return
		}

		path := filepath.Join(dir, filename)
		if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			if _, err := os.Stat(path); err != nil && fileType == "images" {
				if resumeDir, ok := h.media.DirByName("resumes"); ok {
					path = filepath.Join(resumeDir, filename)
				}
			}
			if _, err := os.Stat(path); err != nil {
				h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
				return
			}
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
			http.ServeFile(w, r, path)
			return
		}

		if _, err := os.Stat(path); err != nil {
			h.responder.WriteError(w, errs.NewNotFoundError("file not found"))
			return
		}
		http.ServeFile(w, r, path)
	}
}

// upload handles POST /admin/uploads/{fileType} with a multipart file
// field named file. The stored filename and public URL come back so the
// editor can reference them in a post.
func (h filesHandler) upload() http.HandlerFunc {
	type response struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		fileType := chi.URLParam(r, "fileType")
		if _, err := h.media.Dir(fileType); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("unknown upload type"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing file field"))
			return
		}
		defer file.Close()

		if !h.media.Allowed(fileType, header.Filename) {
			h.responder.WriteError(w, errs.NewValidationError("file", "file extension not allowed"))
			return
		}

		name, err := h.media.Save(fileType, header.Filename, file)
		if err != nil {
			h.logger.Error().Err(err).Str("fileType", fileType).Msg("failed to store upload")
			h.responder.WriteError(w, errs.NewInternalError("failed to store upload"))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, response{
			Filename: name,
			URL:      "/uploads/" + publicDirName(fileType) + "/" + name,
		})
	}
}

// publicDirName maps a media type to its URL path segment.
func publicDirName(fileType string) string {
	switch fileType {
	case services.MediaImage:
		return "images"
	case services.MediaVideo:
		return "videos"
	case services.MediaResume:
		return "resumes"
	}
	return fileType
}
