package database

import (
	"errors"

	"github.com/agrimgupta/portfolio-blog-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// First returns the site profile, or nil when none has been created yet.
// A single profile is expected in normal operation.
func (r *ProfileRepo) First() (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Add inserts a new profile into the database
func (r *ProfileRepo) Add(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

// Update updates an existing profile in the database
func (r *ProfileRepo) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// Educations returns all education rows, highest display order first, then
// most recent start date. One ORDER BY clause gives a single total order.
func (r *ProfileRepo) Educations() ([]*models.Education, error) {
	var educations []*models.Education
	err := r.db.Order("display_order DESC, start_date DESC").Find(&educations).Error
	return educations, err
}

// Experiences returns all experience rows, current positions first, then
// most recent start date.
func (r *ProfileRepo) Experiences() ([]*models.Experience, error) {
	var experiences []*models.Experience
	err := r.db.Order("current DESC, start_date DESC").Find(&experiences).Error
	return experiences, err
}

// Skills returns all skills grouped by category order, then display order,
// then name.
func (r *ProfileRepo) Skills() ([]*models.Skill, error) {
	var skills []*models.Skill
	err := r.db.Order("category ASC, display_order ASC, name ASC").Find(&skills).Error
	return skills, err
}

// Projects returns all projects, newest first.
func (r *ProfileRepo) Projects() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("date DESC").Find(&projects).Error
	return projects, err
}

// FeaturedProjects returns up to limit projects flagged for homepage
// prominence, newest first.
func (r *ProfileRepo) FeaturedProjects(limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("featured = ?", true).Order("date DESC").Limit(limit).Find(&projects).Error
	return projects, err
}

// Achievements returns all achievement rows, lowest display order first,
// then most recent date.
func (r *ProfileRepo) Achievements() ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := r.db.Order("display_order ASC, date DESC").Find(&achievements).Error
	return achievements, err
}
