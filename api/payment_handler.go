package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/agrimgupta/portfolio-blog-backend/database"
	"github.com/agrimgupta/portfolio-blog-backend/errs"
	"github.com/agrimgupta/portfolio-blog-backend/services"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	subscriberCookieName = "course_subscriber"
	subscriberCookieTTL  = 365 * 24 * time.Hour
)

type paymentHandler struct {
	responder Responder
	logger    zerolog.Logger
	courses   *database.CourseRepo
	payments  *services.PaymentService
	validate  *validator.Validate
}

func newPaymentHandler(courses *database.CourseRepo, payments *services.PaymentService) paymentHandler {
	logger := log.With().Str("handlerName", "paymentHandler").Logger()

	return paymentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		courses:   courses,
		payments:  payments,
		validate:  validator.New(),
	}
}

// listCourses serves GET /courses.
func (h paymentHandler) listCourses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courses, err := h.courses.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "courses", err))
			return
		}
		h.responder.WriteJSON(w, courses)
	}
}

// createOrder serves POST /course/payment/create-order, returning the
// gateway order the checkout widget needs.
func (h paymentHandler) createOrder() http.HandlerFunc {
	type request struct {
		CourseID string `json:"courseId" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Name     string `json:"name" validate:"required"`
		Phone    string `json:"phone"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("courseId, email and name are required"))
			return
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("courseId", "invalid course id"))
			return
		}

		result, err := h.payments.CreateOrder(courseID, req.Email, req.Name, req.Phone)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// verifyPayment serves POST /course/payment/verify. A verified payment
// marks the subscriber for a year via cookie.
func (h paymentHandler) verifyPayment() http.HandlerFunc {
	type request struct {
		OrderID       string `json:"orderId" validate:"required"`
		PaymentID     string `json:"paymentId" validate:"required"`
		Signature     string `json:"signature" validate:"required"`
		PaymentMethod string `json:"paymentMethod"`
	}
	type response struct {
		Message  string `json:"message"`
		CourseID string `json:"courseId"`
		Email    string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}
		if err := h.validate.Struct(req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("orderId, paymentId and signature are required"))
			return
		}

		sub, err := h.payments.VerifyPayment(req.OrderID, req.PaymentID, req.Signature, req.PaymentMethod)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     subscriberCookieName,
			Value:    sub.Email,
			Path:     "/",
			Expires:  time.Now().Add(subscriberCookieTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		h.responder.WriteJSON(w, response{
			Message:  "Payment verified successfully",
			CourseID: sub.CourseID.String(),
			Email:    sub.Email,
		})
	}
}

// checkSubscription serves POST /course/check-subscription. When the
// payload omits the email, the subscriber cookie set at verification time
// supplies it, so a returning browser does not re-enter it.
func (h paymentHandler) checkSubscription() http.HandlerFunc {
	type request struct {
		CourseID string `json:"courseId"`
		Email    string `json:"email"`
	}
	type response struct {
		Subscribed bool `json:"subscribed"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid request body"))
			return
		}

		email := req.Email
		if email == "" {
			if cookie, err := r.Cookie(subscriberCookieName); err == nil {
				email = cookie.Value
			}
		}
		if email == "" || req.CourseID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("courseId and email are required"))
			return
		}

		courseID, err := uuid.Parse(req.CourseID)
		if err != nil {
			h.responder.WriteError(w, errs.NewValidationError("courseId", "invalid course id"))
			return
		}

		subscribed, err := h.payments.HasCompletedSubscription(courseID, email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, response{Subscribed: subscribed})
	}
}
