package domain

import "time"

type DesignStatus string

const (
	DesignStatusPending  DesignStatus = "pending"
	DesignStatusApproved DesignStatus = "approved"
	DesignStatusRejected DesignStatus = "rejected"
)

type Design struct {
	ID              int64        `json:"id"`
	Name            string       `json:"name"`
	DesignerID      int64        `json:"designer_id"`
	Image           string       `json:"image"`
	Status          DesignStatus `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	UploadedOn      time.Time    `json:"uploaded_on"`
	// Sales and RevenueCents are denormalized counters, bumped only when an
	// order containing the linked product is delivered.
	Sales        int32  `json:"sales"`
	RevenueCents int64  `json:"revenue_cents"`
	PriceCents   int64  `json:"price_cents"`
	Description  string `json:"description,omitempty"`
	// ProductID is set when an admin approves the design and the storefront
	// product is created.
	ProductID *int64 `json:"product_id,omitempty"`
}
