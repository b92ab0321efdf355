package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription status values. A subscription is created pending at order
// time and moves to completed or failed when the gateway callback is
// verified.
const (
	SubscriptionPending   = "pending"
	SubscriptionCompleted = "completed"
	SubscriptionFailed    = "failed"
)

// Course is a purchasable course. Price is in the base currency unit; the
// gateway receives it multiplied into minor units.
type Course struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string    `json:"title" db:"title" gorm:"type:text;not null"`
	Slug        string    `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description string    `json:"description,omitempty" db:"description" gorm:"type:text"`
	Price       float64   `json:"price" db:"price" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
}

func (c *Course) BeforeSave(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}
	return nil
}

// CourseSubscription records one purchase attempt. Repeated attempts for
// the same course and email create new rows; an entitlement check only
// asks whether at least one completed row exists.
type CourseSubscription struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CourseID      uuid.UUID `json:"courseId" db:"course_id" gorm:"type:uuid;not null;index"`
	Course        *Course   `json:"course,omitempty" gorm:"foreignKey:CourseID;references:ID"`
	Email         string    `json:"email" db:"email" gorm:"type:text;not null;index"`
	Name          string    `json:"name" db:"name" gorm:"type:text;not null"`
	Phone         string    `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	OrderID       string    `json:"orderId" db:"order_id" gorm:"type:text;not null;uniqueIndex"`
	Amount        float64   `json:"amount" db:"amount" gorm:"not null"`
	Currency      string    `json:"currency" db:"currency" gorm:"type:text;not null"`
	Status        string    `json:"status" db:"status" gorm:"type:text;not null;default:pending;index"`
	PaymentID     string    `json:"paymentId,omitempty" db:"payment_id" gorm:"type:text"`
	PaymentMethod string    `json:"paymentMethod,omitempty" db:"payment_method" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at" gorm:"autoUpdateTime"`
}

func (s *CourseSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
