package database

import (
	"errors"

	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepo struct {
	db *gorm.DB
}

func NewCourseRepo(db *gorm.DB) *CourseRepo {
	return &CourseRepo{db}
}

// FindByID returns a course by ID, or nil when no row matches.
func (r *CourseRepo) FindByID(id uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.First(&course, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// FindAll returns all courses ordered by title.
func (r *CourseRepo) FindAll() ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.Order("title ASC").Find(&courses).Error
	return courses, err
}

// Add inserts a new course into the database
func (r *CourseRepo) Add(course *models.Course) error {
	return r.db.Create(course).Error
}

type SubscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db}
}

// FindByOrderID returns the subscription recorded for a gateway order id,
// or nil when no row matches. Lookup is status-agnostic; callbacks against
// rows already in a terminal state are not specially guarded.
func (r *SubscriptionRepo) FindByOrderID(orderID string) (*models.CourseSubscription, error) {
	var sub models.CourseSubscription
	err := r.db.Where("order_id = ?", orderID).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Add inserts a new subscription into the database
func (r *SubscriptionRepo) Add(sub *models.CourseSubscription) error {
	return r.db.Create(sub).Error
}

// Update updates an existing subscription in the database
func (r *SubscriptionRepo) Update(sub *models.CourseSubscription) error {
	return r.db.Save(sub).Error
}

// HasCompleted reports whether at least one completed subscription exists
// for the exact (course, email) pair.
func (r *SubscriptionRepo) HasCompleted(courseID uuid.UUID, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.CourseSubscription{}).
		Where("course_id = ? AND email = ? AND status = ?",
			courseID, email, models.SubscriptionCompleted).
		Count(&count).Error
	return count > 0, err
}
