package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/models"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Currency for all course orders. Prices are stored in rupees and sent to
// the gateway in paise.
const orderCurrency = "INR"

// OrderGateway creates an order on the payment provider and returns its
// opaque order id.
type OrderGateway interface {
	CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func (g razorpayGateway) CreateOrder(amount int64, currency, receipt string, notes map[string]interface{}) (string, error) {
	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
		"notes":    notes,
	}, nil)
	if err != nil {
		return "", err
	}
	orderID, _ := order["id"].(string)
	if orderID == "" {
		return "", fmt.Errorf("gateway returned no order id")
	}
	return orderID, nil
}

// PaymentService bridges course purchases to the payment gateway and
// records outcomes as subscription rows.
type PaymentService struct {
	keyID     string
	keySecret string
	gateway   OrderGateway
	courses   *database.CourseRepo
	subs      *database.SubscriptionRepo
	logger    zerolog.Logger
}

// NewPaymentService wires the gateway client from the configured
// credentials. gateway may be non-nil to substitute the provider client;
// when nil and credentials are present, a Razorpay client is used.
func NewPaymentService(keyID, keySecret string, courses *database.CourseRepo, subs *database.SubscriptionRepo, gateway OrderGateway) *PaymentService {
	if gateway == nil && keyID != "" && keySecret != "" {
		gateway = razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
	}
	return &PaymentService{
		keyID:     keyID,
		keySecret: keySecret,
		gateway:   gateway,
		courses:   courses,
		subs:      subs,
		logger:    log.With().Str("service", "payment").Logger(),
	}
}

// Configured reports whether gateway credentials are present.
func (s *PaymentService) Configured() bool {
	return s.keyID != "" && s.keySecret != "" && s.gateway != nil
}

// OrderResult is returned to the checkout page so it can open the gateway
// widget.
type OrderResult struct {
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"keyId"`
}

// CreateOrder looks up the course, creates a gateway order for its price
// in minor currency units, and records a pending subscription keyed by the
// returned order id.
func (s *PaymentService) CreateOrder(courseID uuid.UUID, email, name, phone string) (*OrderResult, error) {
	if !s.Configured() {
		return nil, errs.NewConfigurationError("payment gateway is not configured")
	}

	course, err := s.courses.FindByID(courseID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "course", err)
	}
	if course == nil {
		return nil, errs.NewNotFoundError("course not found")
	}

	amount := int64(math.Round(course.Price * 100))
	receipt := fmt.Sprintf("course_%s_%d", course.ID, time.Now().Unix())
	notes := map[string]interface{}{
		"course_id":   course.ID.String(),
		"course_name": course.Title,
		"email":       email,
		"name":        name,
	}

	orderID, err := s.gateway.CreateOrder(amount, orderCurrency, receipt, notes)
	if err != nil {
		s.logger.Error().Err(err).Str("courseId", courseID.String()).Msg("gateway order creation failed")
		return nil, errs.NewInternalError("could not create payment order")
	}

	sub := &models.CourseSubscription{
		CourseID: course.ID,
		Email:    email,
		Name:     name,
		Phone:    phone,
		OrderID:  orderID,
		Amount:   course.Price,
		Currency: orderCurrency,
		Status:   models.SubscriptionPending,
	}
	if err := s.subs.Add(sub); err != nil {
		return nil, errs.NewDatabaseError("create", "subscription", err)
	}

	return &OrderResult{
		OrderID:  orderID,
		Amount:   amount,
		Currency: orderCurrency,
		KeyID:    s.keyID,
	}, nil
}

// VerifyPayment checks a gateway callback against the expected
// HMAC-SHA256 signature over "order_id|payment_id". A mismatch marks the
// subscription failed; a match records the payment and marks it
// completed. Lookup is by order id regardless of current status, so a
// later signature-valid callback against a failed row completes it.
func (s *PaymentService) VerifyPayment(orderID, paymentID, signature, method string) (*models.CourseSubscription, error) {
	if !s.Configured() {
		return nil, errs.NewConfigurationError("payment gateway is not configured")
	}

	sub, err := s.subs.FindByOrderID(orderID)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "subscription", err)
	}
	if sub == nil {
		return nil, errs.NewNotFoundError("subscription not found")
	}

	if !s.signatureValid(orderID, paymentID, signature) {
		sub.Status = models.SubscriptionFailed
		if err := s.subs.Update(sub); err != nil {
			return nil, errs.NewDatabaseError("update", "subscription", err)
		}
		return nil, errs.NewVerificationError("payment could not be verified")
	}

	sub.PaymentID = paymentID
	sub.PaymentMethod = method
	sub.Status = models.SubscriptionCompleted
	if err := s.subs.Update(sub); err != nil {
		return nil, errs.NewDatabaseError("update", "subscription", err)
	}
	return sub, nil
}

// HasCompletedSubscription reports whether a completed subscription exists
// for the exact (course, email) pair.
func (s *PaymentService) HasCompletedSubscription(courseID uuid.UUID, email string) (bool, error) {
	ok, err := s.subs.HasCompleted(courseID, email)
	if err != nil {
		return false, errs.NewDatabaseError("query", "subscription", err)
	}
	return ok, nil
}

// signatureValid recomputes the expected signature and compares in
// constant time.
func (s *PaymentService) signatureValid(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
