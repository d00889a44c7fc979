package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"construlink/internal/domain/supplier"
	"construlink/internal/infrastructure/persistence/models"
	"construlink/internal/shared/id"
	"construlink/internal/shared/logger"
)

type SupplierRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSupplierRepository(db *gorm.DB, logger logger.Interface) supplier.Repository {
	return &SupplierRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SupplierRepositoryImpl) Create(ctx context.Context, s *supplier.Supplier) error {
	model := r.toModel(s)
	if model.SID == "" {
		model.SID = id.MustGenerateWithPrefix(id.PrefixSupplier, id.DefaultLength)
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create supplier", "error", err, "business_name", s.BusinessName())
		return fmt.Errorf("failed to create supplier: %w", err)
	}

	if err := s.SetID(model.ID); err != nil {
		return err
	}
	return s.SetSID(model.SID)
}

func (r *SupplierRepositoryImpl) GetByID(ctx context.Context, supplierID uint) (*supplier.Supplier, error) {
	var model models.SupplierModel
	err := r.db.WithContext(ctx).First(&model, supplierID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get supplier", "error", err, "supplier_id", supplierID)
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SupplierRepositoryImpl) GetBySID(ctx context.Context, sid string) (*supplier.Supplier, error) {
	var model models.SupplierModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get supplier by SID", "error", err, "sid", sid)
		return nil, fmt.Errorf("failed to get supplier by SID: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SupplierRepositoryImpl) toEntity(model *models.SupplierModel) (*supplier.Supplier, error) {
	if model == nil {
		return nil, nil
	}
	return supplier.ReconstructSupplier(
		model.ID,
		model.SID,
		model.BusinessName,
		model.ContactName,
		model.Email,
		model.RNC,
		model.CreatedAt,
	)
}

func (r *SupplierRepositoryImpl) toModel(s *supplier.Supplier) *models.SupplierModel {
	return &models.SupplierModel{
		ID:           s.ID(),
		SID:          s.SID(),
		BusinessName: s.BusinessName(),
		ContactName:  s.ContactName(),
		Email:        s.Email(),
		RNC:          s.RNC(),
		CreatedAt:    s.CreatedAt(),
	}
}
