package gormdb

import (
	"context"

	"github.com/uiuclibrary/tyko/internal/common/apperrors"
	"github.com/uiuclibrary/tyko/internal/tykosrv/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (h *TykoDb) CreateCollection(ctx context.Context, c *models.Collection) apperrors.Error {
	err := h.gdb(ctx).Omit(clause.Associations).Create(c).Error
	return mapError(ctx, err, "collection", 0)
}

func (h *TykoDb) GetCollection(ctx context.Context, collectionID int) (*models.Collection, apperrors.Error) {
	var c models.Collection
	err := h.gdb(ctx).Preload("Contact").First(&c, "collection_id = ?", collectionID).Error
	if err != nil {
		return nil, mapError(ctx, err, "collection", collectionID)
	}
	return &c, nil
}

func (h *TykoDb) ListCollections(ctx context.Context) ([]models.Collection, apperrors.Error) {
	var collections []models.Collection
	err := h.gdb(ctx).Preload("Contact").Order("collection_id").Find(&collections).Error
	if err != nil {
		return nil, mapError(ctx, err, "collection", 0)
	}
	return collections, nil
}

func (h *TykoDb) SaveCollection(ctx context.Context, c *models.Collection) apperrors.Error {
	res := h.gdb(ctx).Model(c).Omit(clause.Associations).Select("*").Updates(c)
	if res.Error != nil {
		return mapError(ctx, res.Error, "collection", c.ID)
	}
	if res.RowsAffected == 0 {
		return notFound("collection", c.ID)
	}
	return nil
}

// DeleteCollection removes the collection. Objects of the collection are kept and
// detached from it.
func (h *TykoDb) DeleteCollection(ctx context.Context, collectionID int) apperrors.Error {
	return h.transaction(ctx, "collection", collectionID, func(tx *gorm.DB) error {
		if err := tx.Exec("UPDATE tyko_object SET collection_id = NULL WHERE collection_id = ?", collectionID).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Collection{}, "collection_id = ?", collectionID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("collection", collectionID)
		}
		return nil
	})
}
