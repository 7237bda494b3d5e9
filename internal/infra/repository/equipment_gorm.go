package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	domain "github.com/BruksfildServices01/equipment-lending/internal/domain/equipment"
	"github.com/BruksfildServices01/equipment-lending/internal/models"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// columns written by a state change; nil pointers become NULL.
var mutableColumns = []string{
	"name", "brand", "model", "category", "status",
	"borrowed_by", "borrower_phone", "borrowed_from", "borrowed_until", "reminder_sent",
	"updated_at",
}

type EquipmentGormRepository struct {
	db *gorm.DB
}

func NewEquipmentGormRepository(db *gorm.DB) *EquipmentGormRepository {
	return &EquipmentGormRepository{db: db}
}

// --------------------------------------------------
// Equipment (read)
// --------------------------------------------------

func (r *EquipmentGormRepository) Get(
	ctx context.Context,
	id string,
) (*models.Equipment, error) {

	var eq models.Equipment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&eq).Error; err != nil {
		return nil, translate(err)
	}
	return &eq, nil
}

func (r *EquipmentGormRepository) List(
	ctx context.Context,
) ([]models.Equipment, error) {

	var items []models.Equipment
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --------------------------------------------------
// Equipment (create)
// --------------------------------------------------

func (r *EquipmentGormRepository) Create(
	ctx context.Context,
	eq *models.Equipment,
	entry *models.EquipmentLog,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(eq).Error; err != nil {
			return err
		}
		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
	return translate(err)
}

func (r *EquipmentGormRepository) CreateBatch(
	ctx context.Context,
	items []models.Equipment,
	entries []models.EquipmentLog,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(items) > 0 {
			if err := tx.CreateInBatches(&items, 100).Error; err != nil {
				return err
			}
		}
		if len(entries) > 0 {
			return tx.CreateInBatches(&entries, 100).Error
		}
		return nil
	})
	return translate(err)
}

// --------------------------------------------------
// Equipment (state change)
// --------------------------------------------------

func (r *EquipmentGormRepository) UpdateIfStatus(
	ctx context.Context,
	eq *models.Equipment,
	expected domain.Status,
	entry *models.EquipmentLog,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// UpdateColumns skips autoUpdateTime; updated_at is the log entry time.
		res := tx.Model(eq).
			Where("status = ?", string(expected)).
			Select(mutableColumns).
			UpdateColumns(eq)
		if res.Error != nil {
			return translate(res.Error)
		}

		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Equipment{}).
				Where("id = ?", eq.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.ErrStatusConflict
		}

		if entry != nil {
			return tx.Create(entry).Error
		}
		return nil
	})
}

func (r *EquipmentGormRepository) Delete(
	ctx context.Context,
	id string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("equipment_id = ?", id).
			Delete(&models.EquipmentLog{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Equipment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Log
// --------------------------------------------------

func (r *EquipmentGormRepository) ListLogs(
	ctx context.Context,
	equipmentID string,
) ([]models.EquipmentLog, error) {

	var logs []models.EquipmentLog
	if err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("logged_at DESC, id DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *EquipmentGormRepository) ListHistory(
	ctx context.Context,
	filter domain.HistoryFilter,
) ([]models.EquipmentLog, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.EquipmentLog{})

	if filter.EquipmentID != "" {
		q = q.Where("equipment_id = ?", filter.EquipmentID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", string(filter.Action))
	}
	if filter.From != nil {
		q = q.Where("logged_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("logged_at < ?", *filter.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, limit := pageBounds(filter.Page, filter.Limit)

	var logs []models.EquipmentLog
	if err := q.
		Order("logged_at DESC, id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func pageBounds(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return page, limit
}

// translate maps driver errors onto the domain taxonomy. Anything else is
// returned as is and wrapped as a storage error by the caller.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrDuplicate
	}
	// the sqlite dialector only translates cgo driver errors
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) && isUniqueViolation(sqErr) {
		return domain.ErrDuplicate
	}
	return err
}

func isUniqueViolation(err *sqlite.Error) bool {
	switch err.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(err.Error(), "UNIQUE")
	}
	return false
}

var _ domain.Repository = (*EquipmentGormRepository)(nil)
