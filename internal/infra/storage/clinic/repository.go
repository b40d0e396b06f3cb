package clinic

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/clinicdesk/CDS-ClinicBookingService/internal/domain"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/dbmetrics"
	"github.com/clinicdesk/CDS-ClinicBookingService/pkg/psqlbuilder"
)

const clinicColumns = "id, name, location, daily_capacity, status, created_at, updated_at"

// Repository репозиторий для работы со справочником клиник
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиник
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую клинику
func (r *Repository) Create(ctx context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("clinics").
		Columns(
			"name",
			"location",
			"daily_capacity",
			"status",
		).
		Values(
			c.Name,
			c.Location,
			c.DailyCapacity,
			c.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клинику по ID.
// Хранимой форме записи не доверяем: после сканирования запись валидируется,
// битые записи возвращаются как domain.ErrInvalidClinicRecord.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clinicColumns).
		From("clinics").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Clinic
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.Location,
		&c.DailyCapacity,
		&c.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan clinic: %v", ErrScanRow, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// List получает все клиники, активные первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clinicColumns).
		From("clinics").
		OrderBy("status ASC, name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clinics := make([]*domain.Clinic, 0)

	for rows.Next() {
		var c domain.Clinic
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Location,
			&c.DailyCapacity,
			&c.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		c.CreatedAt = createdAt.Time
		c.UpdatedAt = updatedAt.Time

		if err := c.Validate(); err != nil {
			return nil, err
		}

		clinics = append(clinics, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return clinics, nil
}

// Update обновляет клинику
func (r *Repository) Update(ctx context.Context, id int64, c *domain.Clinic) (*domain.Clinic, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("clinics").
		Set("name", c.Name).
		Set("location", c.Location).
		Set("daily_capacity", c.DailyCapacity).
		Set("status", c.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrClinicNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	c.ID = id
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}
