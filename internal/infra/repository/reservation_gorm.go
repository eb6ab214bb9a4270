package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/rentgrid/car-rental-api/internal/domain/reservation"
	"github.com/rentgrid/car-rental-api/internal/httperr"
	"github.com/rentgrid/car-rental-api/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Car
// --------------------------------------------------

func (r *ReservationGormRepository) GetCar(
	ctx context.Context,
	carID string,
) (*models.Car, error) {

	var car models.Car
	if err := r.db.WithContext(ctx).
		Where("id = ?", carID).
		First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

// --------------------------------------------------
// Reservation (create / conflict)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateWithConflictCheck(
	ctx context.Context,
	res *models.Reservation,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Reservation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"car_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
				res.CarID, string(domain.StatusCancelled), res.EndDate, res.StartDate,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness("date_conflict")
		}

		return tx.Create(res).Error
	})
}

func (r *ReservationGormRepository) ListOverlapping(
	ctx context.Context,
	carID string,
	start time.Time,
	end time.Time,
) ([]models.Reservation, error) {

	var conflicts []models.Reservation
	if err := r.db.WithContext(ctx).
		Where(
			"car_id = ? AND status <> ? AND start_date <= ? AND end_date >= ?",
			carID, string(domain.StatusCancelled), end, start,
		).
		Order("start_date ASC").
		Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

// --------------------------------------------------
// Reservation (queries)
// --------------------------------------------------

func (r *ReservationGormRepository) ListByTenant(
	ctx context.Context,
	tenantID string,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("Customer").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]models.Reservation, error) {

	var reservations []models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&reservations).Error; err != nil {
		return nil, err
	}

	return reservations, nil
}

func (r *ReservationGormRepository) GetForTenant(
	ctx context.Context,
	id string,
	tenantID string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Preload("Car").
		Preload("Customer").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&res).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

// --------------------------------------------------
// Reservation (mutations)
// --------------------------------------------------

func (r *ReservationGormRepository) UpdateStatus(
	ctx context.Context,
	id string,
	tenantID string,
	status string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&res).Error; err != nil {
		return nil, err
	}

	res.Status = status
	if err := r.db.WithContext(ctx).Save(&res).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) Delete(
	ctx context.Context,
	id string,
	tenantID string,
) (string, error) {

	result := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&models.Reservation{})

	if result.Error != nil {
		return "", result.Error
	}
	if result.RowsAffected == 0 {
		return "", gorm.ErrRecordNotFound
	}

	return id, nil
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
