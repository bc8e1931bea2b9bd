package controllers

import (
	"errors"
	"time"

	"cfaprep/backend/config"
	"cfaprep/backend/middleware"
	"cfaprep/backend/models"
	"cfaprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentsController struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewPaymentsController(db *gorm.DB, cfg *config.Config) *PaymentsController {
	return &PaymentsController{DB: db, Cfg: cfg}
}

// planAmounts maps a subscription plan to its price in the smallest
// currency unit.
var planAmounts = map[string]int{
	"premium": 499900,
}

const planValidityDays = 365

// CreateOrder godoc
// @Summary Create a payment order for a subscription plan
// @Tags payments
// @Accept json
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payments/order [post]
func (pc *PaymentsController) CreateOrder(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	type OrderInput struct {
		Plan string `json:"plan"`
	}

	var input OrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	amount, ok := planAmounts[input.Plan]
	if !ok {
		return utils.ValidationError(c, map[string]string{"plan": "unknown plan"})
	}

	payment := models.Payment{
		UserID:   userID,
		Plan:     input.Plan,
		Amount:   amount,
		Currency: "INR",
		OrderID:  "order_" + uuid.NewString(),
		Receipt:  "rcpt_" + uuid.NewString(),
		Status:   "created",
	}
	if err := pc.DB.Create(&payment).Error; err != nil {
		return utils.InternalServerError(c, "Could not create order")
	}

	return utils.Created(c, fiber.Map{
		"order_id": payment.OrderID,
		"amount":   payment.Amount,
		"currency": payment.Currency,
		"receipt":  payment.Receipt,
		"key_id":   pc.Cfg.PaymentKeyID,
	})
}

// VerifyPayment godoc
// @Summary Verify a gateway payment confirmation
// @Description Checks the gateway signature and activates the subscription
// @Tags payments
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /payments/verify [post]
func (pc *PaymentsController) VerifyPayment(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	type VerifyInput struct {
		OrderID   string `json:"order_id"`
		PaymentID string `json:"payment_id"`
		Signature string `json:"signature"`
	}

	var input VerifyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	fieldErrors := map[string]string{}
	if input.OrderID == "" {
		fieldErrors["order_id"] = "order_id is required"
	}
	if input.PaymentID == "" {
		fieldErrors["payment_id"] = "payment_id is required"
	}
	if input.Signature == "" {
		fieldErrors["signature"] = "signature is required"
	}
	if len(fieldErrors) > 0 {
		return utils.ValidationError(c, fieldErrors)
	}

	var payment models.Payment
	if err := pc.DB.Where("order_id = ? AND user_id = ?", input.OrderID, userID).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Order not found")
		}
		return utils.InternalServerError(c, "Could not query database")
	}

	if payment.Status == "paid" {
		return utils.BadRequest(c, "Order already paid")
	}

	if !utils.VerifyPaymentSignature(input.OrderID, input.PaymentID, input.Signature, pc.Cfg.PaymentKeySecret) {
		payment.Status = "failed"
		payment.PaymentID = input.PaymentID
		pc.DB.Save(&payment)
		return utils.BadRequest(c, "Invalid payment signature")
	}

	expires := time.Now().AddDate(0, 0, planValidityDays)
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		payment.Status = "paid"
		payment.PaymentID = input.PaymentID
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"plan":         payment.Plan,
				"plan_expires": expires,
			}).Error; err != nil {
			return err
		}

		return tx.Create(&models.Activity{
			UserID: userID,
			Type:   models.ActivitySubscriptionActivated,
		}).Error
	})
	if err != nil {
		return utils.InternalServerError(c, "Could not activate subscription")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"status":       "paid",
		"plan":         payment.Plan,
		"plan_expires": expires,
	})
}

// GetPayments lists the caller's payment history, newest first.
func (pc *PaymentsController) GetPayments(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var payments []models.Payment
	if err := pc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return utils.InternalServerError(c, "Could not query database")
	}

	return utils.Success(c, fiber.StatusOK, payments)
}
