package usecases

import (
	"context"
	"fmt"

	"construlink/internal/domain/subscription"
	vo "construlink/internal/domain/subscription/valueobjects"
	"construlink/internal/domain/supplier"
	"construlink/internal/shared/biztime"
	apperrors "construlink/internal/shared/errors"
	"construlink/internal/shared/logger"
)

type CheckLimitQuery struct {
	SupplierSID string
	Resource    string
}

type CheckLimitResult struct {
	Allowed  bool
	Current  int
	Limit    vo.Limit
	Resource vo.ResourceType
	Message  string
}

// CheckLimitUseCase answers "can this supplier create one more X right now".
// It is advisory: the reported usage is a snapshot and may be stale by the
// time the caller acts on it. The hard cap lives in the atomic increment on
// the usage repository; this check exists so UIs can disable buttons and
// show upgrade prompts without attempting a write.
type CheckLimitUseCase struct {
	subscriptionRepo subscription.Repository
	usageRepo        subscription.UsageRepository
	supplierRepo     supplier.Repository
	clock            Clock
	logger           logger.Interface
}

func NewCheckLimitUseCase(
	subscriptionRepo subscription.Repository,
	usageRepo subscription.UsageRepository,
	supplierRepo supplier.Repository,
	clock Clock,
	logger logger.Interface,
) *CheckLimitUseCase {
	return &CheckLimitUseCase{
		subscriptionRepo: subscriptionRepo,
		usageRepo:        usageRepo,
		supplierRepo:     supplierRepo,
		clock:            clock,
		logger:           logger,
	}
}

func (uc *CheckLimitUseCase) Execute(ctx context.Context, query CheckLimitQuery) (*CheckLimitResult, error) {
	resource, err := vo.ParseResourceType(query.Resource)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	sup, err := uc.supplierRepo.GetBySID(ctx, query.SupplierSID)
	if err != nil {
		uc.logger.Errorw("failed to get supplier", "error", err, "supplier_sid", query.SupplierSID)
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	if sup == nil {
		return nil, apperrors.NewNotFoundError("supplier not found")
	}

	sub, err := uc.subscriptionRepo.GetBySupplierID(ctx, sup.ID())
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "supplier_id", sup.ID())
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("supplier has no subscription")
	}

	now := uc.clock.Now()
	plan, err := subscription.GetPlan(sub.Plan())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve plan: %w", err)
	}
	limit := plan.Limit(resource)

	current := 0
	usage, err := uc.usageRepo.GetUsage(ctx, sup.ID(), biztime.MonthKey(now))
	if err != nil {
		uc.logger.Errorw("failed to get usage", "error", err, "supplier_id", sup.ID())
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	if usage != nil {
		current = usage.Count(resource)
	}

	if !sub.HasAccess(now) {
		return &CheckLimitResult{
			Allowed:  false,
			Current:  current,
			Limit:    limit,
			Resource: resource,
			Message:  "Su suscripción no está activa. Reactívela para continuar.",
		}, nil
	}

	allowed := limit.Allows(current)
	return &CheckLimitResult{
		Allowed:  allowed,
		Current:  current,
		Limit:    limit,
		Resource: resource,
		Message:  limitMessage(resource, current, limit, allowed, plan.ID()),
	}, nil
}

var resourceLabels = map[vo.ResourceType]string{
	vo.ResourceProducts:    "productos",
	vo.ResourceQuotes:      "cotizaciones",
	vo.ResourceSpecialties: "especialidades",
	vo.ResourcePhotos:      "fotos",
}

func limitMessage(resource vo.ResourceType, current int, limit vo.Limit, allowed bool, planID vo.PlanID) string {
	label := resourceLabels[resource]

	if limit.IsUnlimited() {
		return fmt.Sprintf("Su plan no limita %s (%d este mes).", label, current)
	}
	if allowed {
		return fmt.Sprintf("Ha utilizado %d de %d %s este mes.", current, limit.Value(), label)
	}

	msg := fmt.Sprintf("Ha alcanzado el límite de %d %s de su plan (%d/%d este mes).", limit.Value(), label, current, limit.Value())
	if next, ok := nextPlanUp(planID); ok {
		msg += fmt.Sprintf(" Actualice al plan %s para aumentar su límite.", next.Name())
	}
	return msg
}

func nextPlanUp(planID vo.PlanID) (*subscription.Plan, bool) {
	var next vo.PlanID
	switch planID {
	case vo.PlanBasic:
		next = vo.PlanProfessional
	case vo.PlanProfessional:
		next = vo.PlanEnterprise
	default:
		return nil, false
	}

	plan, err := subscription.GetPlan(next)
	if err != nil {
		return nil, false
	}
	return plan, true
}
