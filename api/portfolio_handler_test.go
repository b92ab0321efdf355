package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/models"
)

func seedProfile(t *testing.T, db database.Database) *models.Profile {
	t.Helper()

	profile := &models.Profile{
		Name:  "Agrim Gupta",
		Title: "Backend Engineer",
		Email: "agrim@example.com",
	}
	if err := db.ProfileRepo().Add(profile); err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

func TestHomeFeaturedProjectsAndSkills(t *testing.T) {
	ts, db := newTestServer(t)
	profile := seedProfile(t, db)

	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	for i := range dates {
		project := &models.Project{
			ProfileID: profile.ID,
			Title:     "Project " + string(rune('A'+i)),
			Featured:  true,
			Date:      &dates[i],
		}
		profile.Projects = append(profile.Projects, *project)
	}
	profile.Skills = []models.Skill{
		{ProfileID: profile.ID, Name: "Python", Category: "programming"},
		{ProfileID: profile.ID, Name: "Docker", Category: "tools"},
		{ProfileID: profile.ID, Name: "Underwater Basket Weaving", Category: "other"},
	}
	if err := db.ProfileRepo().Update(profile); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	var home HomeResponse
	resp := doJSON(t, ts, http.MethodGet, "/", nil, nil, &home)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if home.Profile == nil || home.Profile.Name != "Agrim Gupta" {
		t.Fatalf("expected seeded profile, got %+v", home.Profile)
	}
	if len(home.FeaturedProjects) != 3 {
		t.Fatalf("homepage shows at most 3 featured projects, got %d", len(home.FeaturedProjects))
	}
	if home.FeaturedProjects[0].Title != "Project D" {
		t.Fatalf("featured projects should be newest first, got %q", home.FeaturedProjects[0].Title)
	}

	names := map[string]bool{}
	for _, group := range home.SkillGroups {
		for _, s := range group.Skills {
			names[s.Name] = true
		}
	}
	if !names["Python"] || !names["Docker"] {
		t.Fatalf("curated skills missing from homepage: %v", names)
	}
	if names["Underwater Basket Weaving"] {
		t.Fatal("non-curated skill should not appear on the homepage")
	}
}

func TestResumeSplitsCertificationsFromAchievements(t *testing.T) {
	ts, db := newTestServer(t)
	profile := seedProfile(t, db)

	date := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	profile.Achievements = []models.Achievement{
		{ProfileID: profile.ID, Title: "AWS Certified", Date: date, Order: 1},
		{ProfileID: profile.ID, Title: "Hackathon Winner", Date: date, Order: 20},
	}
	profile.Projects = []models.Project{
		{ProfileID: profile.ID, Title: "Side project", Featured: false, Date: &date},
		{ProfileID: profile.ID, Title: "Main project", Featured: true, Date: &date},
	}
	if err := db.ProfileRepo().Update(profile); err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}

	var resume ResumeResponse
	resp := doJSON(t, ts, http.MethodGet, "/resume", nil, nil, &resume)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if len(resume.Certifications) != 1 || resume.Certifications[0].Title != "AWS Certified" {
		t.Fatalf("expected one certification, got %+v", resume.Certifications)
	}
	if len(resume.Achievements) != 1 || resume.Achievements[0].Title != "Hackathon Winner" {
		t.Fatalf("expected one achievement, got %+v", resume.Achievements)
	}
	if len(resume.FreelanceWork) != 1 || resume.FreelanceWork[0].Title != "Side project" {
		t.Fatalf("freelance work should be the non-featured projects, got %+v", resume.FreelanceWork)
	}
}

func TestContactBuildsMailtoLink(t *testing.T) {
	ts, db := newTestServer(t)
	seedProfile(t, db)

	var result struct {
		MailtoLink string `json:"mailtoLink"`
	}
	resp := doJSON(t, ts, http.MethodPost, "/contact", nil, map[string]string{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Project inquiry",
		"message": "I have a project for you.",
	}, &result)

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if !strings.HasPrefix(result.MailtoLink, "mailto:agrim@example.com?subject=Project%20inquiry") {
		t.Fatalf("unexpected mailto link: %q", result.MailtoLink)
	}
	if resp.Header.Get("Location") != result.MailtoLink {
		t.Fatal("Location header should match the mailto link")
	}
}

func TestContactValidation(t *testing.T) {
	ts, db := newTestServer(t)
	seedProfile(t, db)

	resp := doJSON(t, ts, http.MethodPost, "/contact", nil, map[string]string{
		"name":    "J",
		"email":   "not-an-email",
		"subject": "x",
		"message": "too short",
	}, nil)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("invalid submission should 400, got %d", resp.StatusCode)
	}
}

func TestUploadAndServeImage(t *testing.T) {
	ts, _ := newTestServer(t)
	cookies := loginAdmin(t, ts)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "banner image.png")
	if err != nil {
		t.Fatalf("failed to build form file: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/admin/uploads/image", &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}

	var uploaded struct {
		Filename string `json:"filename"`
		URL      string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		t.Fatalf("failed to decode upload response: %v", err)
	}
	if !strings.HasSuffix(uploaded.Filename, "banner_image.png") {
		t.Fatalf("unexpected stored filename %q", uploaded.Filename)
	}

	served, err := http.Get(ts.URL + uploaded.URL)
	if err != nil {
		t.Fatalf("failed to fetch uploaded file: %v", err)
	}
	defer served.Body.Close()
	if served.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 serving upload, got %d", served.StatusCode)
	}
	content, _ := io.ReadAll(served.Body)
	if string(content) != "png-bytes" {
		t.Fatalf("served content mismatch: %q", content)
	}
}

func TestServeUnknownUploadType(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, ts, http.MethodGet, "/uploads/secrets/passwd", nil, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown upload type should 404, got %d", resp.StatusCode)
	}
}
