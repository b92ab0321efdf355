package database

import (
	"gorm.io/gorm"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type Database struct {
	postRepo         *PostRepo
	categoryRepo     *CategoryRepo
	tagRepo          *TagRepo
	profileRepo      *ProfileRepo
	userRepo         *UserRepo
	courseRepo       *CourseRepo
	subscriptionRepo *SubscriptionRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		postRepo:         NewPostRepo(db),
		categoryRepo:     NewCategoryRepo(db),
		tagRepo:          NewTagRepo(db),
		profileRepo:      NewProfileRepo(db),
		userRepo:         NewUserRepo(db),
		courseRepo:       NewCourseRepo(db),
		subscriptionRepo: NewSubscriptionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) ProfileRepo() *ProfileRepo {
	return d.profileRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CourseRepo() *CourseRepo {
	return d.courseRepo
}

func (d Database) SubscriptionRepo() *SubscriptionRepo {
	return d.subscriptionRepo
}
