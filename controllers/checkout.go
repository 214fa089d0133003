package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"scholarhub/payments"
)

// placeholderImage is attached to every checkout line item; scholarships do
// not carry their own product imagery.
const placeholderImage = "https://i.ibb.co/2PNy7yB/scholarship.png"

// CreateCheckoutSession asks the payment provider for a hosted checkout page
// covering the application fee and returns its redirect URL. Provider errors
// are echoed to the caller.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var input struct {
		ApplicationID   string          `json:"applicationId" binding:"required"`
		ScholarshipName string          `json:"scholarshipName"`
		UniversityName  string          `json:"universityName"`
		Degree          string          `json:"degree"`
		TotalAmount     decimal.Decimal `json:"totalAmount"`
		Customer        struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"customer"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if input.TotalAmount.LessThanOrEqual(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totalAmount must be positive"})
		return
	}

	successURL := fmt.Sprintf("%s/payment/success?applicationId=%s", h.cfg.ClientBaseURL, input.ApplicationID)
	cancelURL := fmt.Sprintf("%s/payment/cancel?applicationId=%s", h.cfg.ClientBaseURL, input.ApplicationID)

	metadata := map[string]interface{}{
		"applicationId":   input.ApplicationID,
		"scholarshipName": input.ScholarshipName,
		"universityName":  input.UniversityName,
		"degree":          input.Degree,
		"customerName":    input.Customer.Name,
		"customerEmail":   input.Customer.Email,
		"productImage":    placeholderImage,
	}

	session, err := h.gateway.CreateCheckoutSession(payments.CheckoutRequest{
		Reference:       uuid.NewString(),
		ApplicationID:   input.ApplicationID,
		ScholarshipName: input.ScholarshipName,
		UniversityName:  input.UniversityName,
		Degree:          input.Degree,
		Amount:          input.TotalAmount,
		ProductImage:    placeholderImage,
		CustomerName:    input.Customer.Name,
		CustomerEmail:   normalizeEmail(input.Customer.Email),
		SuccessURL:      successURL,
		CancelURL:       cancelURL,
		Metadata:        metadata,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        session.PaymentURL,
		"reference":  session.Reference,
		"amount":     session.AmountMinor,
		"currency":   session.Currency,
		"successUrl": successURL,
		"cancelUrl":  cancelURL,
		"metadata":   metadata,
	})
}
