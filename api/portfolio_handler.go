package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/agrimgupta/portfolio-blog-backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// The homepage shows a hand-picked subset of the full skill list.
var homepageSkillNames = map[string]bool{
	"Python": true, "Django": true, "Flask": true, "FastAPI": true,
	"Generative AI": true, "RAG (Retrieval-Augmented Generation)": true,
	"LLM Fine-tuning": true, "OpenAI API": true,
	"MySQL": true, "SQL": true,
	"AWS": true, "Docker": true, "Git": true,
}

const fallbackContactEmail = "your-email@example.com"

type portfolioHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  *database.ProfileRepo
	media     *services.MediaStore
	validate  *validator.Validate
}

func newPortfolioHandler(profiles *database.ProfileRepo, media *services.MediaStore) portfolioHandler {
	logger := log.With().Str("handlerName", "portfolioHandler").Logger()

	return portfolioHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  profiles,
		media:     media,
		validate:  validator.New(),
	}
}

// SkillGroup is one skill category with its skills in display order.
type SkillGroup struct {
	Category string          `json:"category"`
	Skills   []*models.Skill `json:"skills"`
}

// HomeResponse is the portfolio homepage payload.
type HomeResponse struct {
	Profile          *models.Profile   `json:"profile"`
	FeaturedProjects []*models.Project `json:"featuredProjects"`
	SkillGroups      []SkillGroup      `json:"skillGroups"`
}

// ResumeResponse is the full resume payload.
type ResumeResponse struct {
	Profile        *models.Profile        `json:"profile"`
	Educations     []*models.Education    `json:"educations"`
	Experiences    []*models.Experience   `json:"experiences"`
	SkillGroups    []SkillGroup           `json:"skillGroups"`
	Projects       []*models.Project      `json:"projects"`
	FreelanceWork  []*models.Project      `json:"freelanceWork"`
	Certifications []*models.Achievement `json:"certifications"`
	Achievements   []*models.Achievement `json:"achievements"`
}

// home serves GET / with the profile, up to three featured projects and
// the highlighted skills grouped by category.
func (h portfolioHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profiles.First()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		featured, err := h.profiles.FeaturedProjects(3)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		skills, err := h.profiles.Skills()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		highlighted := make([]*models.Skill, 0, len(skills))
		for _, s := range skills {
			if homepageSkillNames[s.Name] {
				highlighted = append(highlighted, s)
			}
		}

		h.responder.WriteJSON(w, HomeResponse{
			Profile:          profile,
			FeaturedProjects: featured,
			SkillGroups:      groupSkills(highlighted),
		})
	}
}

// resume serves GET /resume. Achievement rows below the certification
// order boundary are split out as certifications; non-featured projects
// double as the freelance work section.
func (h portfolioHandler) resume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profiles.First()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		educations, err := h.profiles.Educations()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "educations", err))
			return
		}

		experiences, err := h.profiles.Experiences()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "experiences", err))
			return
		}

		skills, err := h.profiles.Skills()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		projects, err := h.profiles.Projects()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		allAchievements, err := h.profiles.Achievements()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "achievements", err))
			return
		}

		certifications := make([]*models.Achievement, 0)
		achievements := make([]*models.Achievement, 0)
		for _, a := range allAchievements {
			if a.Order < models.CertificationOrderLimit {
				certifications = append(certifications, a)
			} else {
				achievements = append(achievements, a)
			}
		}

		freelance := make([]*models.Project, 0)
		for _, p := range projects {
			if !p.Featured {
				freelance = append(freelance, p)
			}
		}

		h.responder.WriteJSON(w, ResumeResponse{
			Profile:        profile,
			Educations:     educations,
			Experiences:    experiences,
			SkillGroups:    groupSkills(skills),
			Projects:       projects,
			FreelanceWork:  freelance,
			Certifications: certifications,
			Achievements:   achievements,
		})
	}
}

// contact serves POST /contact. The message is never delivered server
// side; a validated submission yields a mailto link for the client to
// open.
func (h portfolioHandler) contact() http.HandlerFunc {
	type response struct {
		MailtoLink string `json:"mailtoLink"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var message services.ContactMessage
		if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}

		if err := h.validate.Struct(message); err != nil {
			var invalid validator.ValidationErrors
			if errors.As(err, &invalid) && len(invalid) > 0 {
				field := invalid[0]
				h.responder.WriteError(w, errs.NewValidationError(field.Field(), "invalid value for "+field.Field()))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("invalid contact message"))
			return
		}

		profile, err := h.profiles.First()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}

		recipient := fallbackContactEmail
		if profile != nil && profile.Email != "" {
			recipient = profile.Email
		}

		link := services.MailtoLink(recipient, message)
		w.Header().Set("Location", link)
		w.WriteHeader(http.StatusSeeOther)
		h.responder.WriteJSON(w, response{MailtoLink: link})
	}
}

// downloadResume serves GET /download-resume, sending the profile's
// stored resume PDF as an attachment.
func (h portfolioHandler) downloadResume() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := h.profiles.First()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil || profile.ResumeFile == "" {
			h.responder.WriteError(w, errs.NewNotFoundError("resume file not found"))
			return
		}

		path, ok := h.media.Path(services.MediaResume, profile.ResumeFile)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("resume file not found"))
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+profile.ResumeFile+`"`)
		http.ServeFile(w, r, path)
	}
}

// groupSkills buckets skills by category in the fixed category display
// order, preserving each bucket's query order.
func groupSkills(skills []*models.Skill) []SkillGroup {
	buckets := make(map[string][]*models.Skill)
	for _, s := range skills {
		buckets[s.Category] = append(buckets[s.Category], s)
	}

	groups := make([]SkillGroup, 0, len(buckets))
	for _, c := range models.SkillCategories {
		if bucket, ok := buckets[c.Key]; ok {
			groups = append(groups, SkillGroup{Category: c.Display, Skills: bucket})
			delete(buckets, c.Key)
		}
	}
	for key, bucket := range buckets {
		groups = append(groups, SkillGroup{Category: models.SkillCategoryDisplay(key), Skills: bucket})
	}
	return groups
}
