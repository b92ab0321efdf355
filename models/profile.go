package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile holds the personal information shown on the portfolio pages.
// All resume child entities are exclusively owned by one profile and are
// removed with it.
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name         string    `json:"name" db:"name" gorm:"type:text;not null"`
	Title        string    `json:"title,omitempty" db:"title" gorm:"type:text"`
	Bio          string    `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	Email        string    `json:"email,omitempty" db:"email" gorm:"type:text"`
	Phone        string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Location     string    `json:"location,omitempty" db:"location" gorm:"type:text"`
	ProfileImage string    `json:"profileImage,omitempty" db:"profile_image" gorm:"type:text"`
	LinkedinURL  string    `json:"linkedinUrl,omitempty" db:"linkedin_url" gorm:"type:text"`
	GithubURL    string    `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	WebsiteURL   string    `json:"websiteUrl,omitempty" db:"website_url" gorm:"type:text"`
	ResumeFile   string    `json:"resumeFile,omitempty" db:"resume_file" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime"`

	Educations   []Education   `json:"educations,omitempty" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
	Experiences  []Experience  `json:"experiences,omitempty" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
	Skills       []Skill       `json:"skills,omitempty" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
	Projects     []Project     `json:"projects,omitempty" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
	Achievements []Achievement `json:"achievements,omitempty" gorm:"foreignKey:ProfileID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
