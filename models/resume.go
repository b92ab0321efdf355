package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill category keys with their display names, in presentation order.
var SkillCategories = []struct {
	Key     string
	Display string
}{
	{"programming", "Programming Languages"},
	{"framework", "Frameworks & Libraries"},
	{"database", "Databases"},
	{"tools", "Tools & Technologies"},
	{"soft", "Soft Skills"},
	{"other", "Other"},
}

// SkillCategoryDisplay resolves a category key to its display name, falling
// back to the key itself for unknown categories.
func SkillCategoryDisplay(key string) string {
	for _, c := range SkillCategories {
		if c.Key == key {
			return c.Display
		}
	}
	return key
}

// Education is an educational background entry.
type Education struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID   uuid.UUID  `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index"`
	Institution string     `json:"institution" db:"institution" gorm:"type:text;not null"`
	Degree      string     `json:"degree" db:"degree" gorm:"type:text;not null"`
	Field       string     `json:"field,omitempty" db:"field" gorm:"type:text"`
	StartDate   time.Time  `json:"startDate" db:"start_date" gorm:"not null"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	Description string     `json:"description,omitempty" db:"description" gorm:"type:text"`
	Order       int        `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
}

func (e *Education) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Experience is a work experience entry.
type Experience struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID   uuid.UUID  `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index"`
	Company     string     `json:"company" db:"company" gorm:"type:text;not null"`
	Position    string     `json:"position" db:"position" gorm:"type:text;not null"`
	StartDate   time.Time  `json:"startDate" db:"start_date" gorm:"not null"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	Current     bool       `json:"current" db:"current" gorm:"not null;default:false"`
	Description string     `json:"description,omitempty" db:"description" gorm:"type:text"`
	Order       int        `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// Skill is a single skill with a proficiency level between 0 and 100.
type Skill struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID   uuid.UUID `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index"`
	Name        string    `json:"name" db:"name" gorm:"type:text;not null"`
	Category    string    `json:"category" db:"category" gorm:"type:text;not null;default:other"`
	Proficiency int       `json:"proficiencyLevel" db:"proficiency_level" gorm:"column:proficiency_level;not null;default:50"`
	Order       int       `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Project is a portfolio project. Featured projects appear on the homepage;
// non-featured ones are listed as freelance work on the resume.
type Project struct {
	ID           uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID    uuid.UUID  `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index"`
	Title        string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description  string     `json:"description,omitempty" db:"description" gorm:"type:text"`
	Image        string     `json:"image,omitempty" db:"image" gorm:"type:text"`
	URL          string     `json:"url,omitempty" db:"url" gorm:"type:text"`
	GithubURL    string     `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	Technologies string     `json:"technologies,omitempty" db:"technologies" gorm:"type:text"`
	Date         *time.Time `json:"date,omitempty" db:"date"`
	Featured     bool       `json:"featured" db:"featured" gorm:"not null;default:false"`
	Order        int        `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TechnologiesList splits the comma-separated technologies column.
func (p *Project) TechnologiesList() []string {
	if p.Technologies == "" {
		return nil
	}
	parts := strings.Split(p.Technologies, ",")
	techs := make([]string, 0, len(parts))
	for _, part := range parts {
		if t := strings.TrimSpace(part); t != "" {
			techs = append(techs, t)
		}
	}
	return techs
}

// Achievement covers awards and certifications. Rows with Order < 10 are
// presented as certifications, the rest as achievements.
type Achievement struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProfileID      uuid.UUID `json:"profileId" db:"profile_id" gorm:"type:uuid;not null;index"`
	Title          string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description    string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Date           time.Time `json:"date" db:"date" gorm:"not null"`
	Issuer         string    `json:"issuer,omitempty" db:"issuer" gorm:"type:text"`
	CertificateURL string    `json:"certificateUrl,omitempty" db:"certificate_url" gorm:"type:text"`
	Order          int       `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// CertificationOrderLimit is the display-order boundary between
// certifications and achievements on the resume page.
const CertificationOrderLimit = 10
