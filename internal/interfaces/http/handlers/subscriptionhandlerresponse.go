package handlers

import (
	"time"

	"construlink/internal/domain/subscription"
)

type SubscriptionResponse struct {
	SID                string     `json:"sid"`
	SupplierID         uint       `json:"supplier_id"`
	Plan               string     `json:"plan"`
	BillingCycle       string     `json:"billing_cycle"`
	Status             string     `json:"status"`
	TrialEndDate       *time.Time `json:"trial_end_date,omitempty"`
	TrialDays          int        `json:"trial_days"`
	CurrentPeriodStart time.Time  `json:"current_period_start"`
	CurrentPeriodEnd   time.Time  `json:"current_period_end"`
	MonthlyAmount      int64      `json:"monthly_amount"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelReason       *string    `json:"cancel_reason,omitempty"`
	HasAccess          *bool      `json:"has_access,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

type ProrationResponse struct {
	DaysRemaining    int   `json:"days_remaining"`
	TotalDays        int   `json:"total_days"`
	CreditAmount     int64 `json:"credit_amount"`
	NewPlanRemaining int64 `json:"new_plan_remaining"`
	AmountToPay      int64 `json:"amount_to_pay"`
	IsUpgrade        bool  `json:"is_upgrade"`
}

func toSubscriptionResponse(sub *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		SID:                sub.SID(),
		SupplierID:         sub.SupplierID(),
		Plan:               sub.Plan().String(),
		BillingCycle:       sub.BillingCycle().String(),
		Status:             sub.Status().String(),
		TrialEndDate:       sub.TrialEndDate(),
		TrialDays:          sub.TrialDays(),
		CurrentPeriodStart: sub.CurrentPeriodStart(),
		CurrentPeriodEnd:   sub.CurrentPeriodEnd(),
		MonthlyAmount:      sub.MonthlyAmount(),
		CancelledAt:        sub.CancelledAt(),
		CancelReason:       sub.CancelReason(),
		CreatedAt:          sub.CreatedAt(),
	}
}

func toSubscriptionResponseWithAccess(sub *subscription.Subscription, hasAccess bool) SubscriptionResponse {
	resp := toSubscriptionResponse(sub)
	resp.HasAccess = &hasAccess
	return resp
}

func toProrationResponse(p subscription.Proration) ProrationResponse {
	return ProrationResponse{
		DaysRemaining:    p.DaysRemaining,
		TotalDays:        p.TotalDays,
		CreditAmount:     p.CreditAmount,
		NewPlanRemaining: p.NewPlanRemaining,
		AmountToPay:      p.AmountToPay,
		IsUpgrade:        p.IsUpgrade,
	}
}
