package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
)

type businessRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewBusinessRepository создает новый экземпляр BusinessRepository
func NewBusinessRepository(db *DB) repository.BusinessRepository {
	return &businessRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const businessSelectColumns = `
		SELECT id, name, category, description,
			country, state, city, address,
			country_id, state_id, department_id, city_id, neighborhood_id,
			latitude, longitude, rating, review_count, is_active, created_at
		FROM businesses
`

// GetByID возвращает бизнес по id
func (r *businessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	query := businessSelectColumns + `
		WHERE id = $1
	`

	var business domain.Business
	err := r.db.GetContext(ctx, &business, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrBusinessNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get business by id", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &business, nil
}

// GetByLocation возвращает активные бизнесы по денормализованным
// строкам локации, отсортированные по убыванию рейтинга.
// Сортировка по дистанции выполняется уровнем выше
func (r *businessRepository) GetByLocation(ctx context.Context, country, state, city string) ([]domain.Business, error) {
	query := businessSelectColumns + `
		WHERE is_active = TRUE AND country = $1
	`
	args := []interface{}{country}

	if state != "" {
		args = append(args, state)
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if city != "" {
		args = append(args, city)
		query += fmt.Sprintf(" AND city = $%d", len(args))
	}

	query += ` ORDER BY rating DESC NULLS LAST`

	businesses := []domain.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		r.logger.Error("Failed to load businesses by location",
			zap.String("country", country),
			zap.String("state", state),
			zap.String("city", city),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return businesses, nil
}

// Search выполняет плоский поиск по термину/категории/ссылочным id.
// Радиусная фильтрация и сортировка по дистанции выполняются уровнем выше
func (r *businessRepository) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Business, error) {
	query := businessSelectColumns + `
		WHERE is_active = TRUE
	`
	args := []interface{}{}

	if filters.Term != "" {
		args = append(args, "%"+filters.Term+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if filters.Category != "" {
		args = append(args, filters.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filters.CountryID != "" {
		args = append(args, filters.CountryID)
		query += fmt.Sprintf(" AND country_id = $%d", len(args))
	}
	if filters.StateID != "" {
		args = append(args, filters.StateID)
		query += fmt.Sprintf(" AND state_id = $%d", len(args))
	}
	if filters.DepartmentID != "" {
		args = append(args, filters.DepartmentID)
		query += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filters.CityID != "" {
		args = append(args, filters.CityID)
		query += fmt.Sprintf(" AND city_id = $%d", len(args))
	}

	query += orderClause(filters.SortBy, filters.SortOrder)

	businesses := []domain.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		r.logger.Error("Failed to search businesses", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return businesses, nil
}

// orderClause собирает ORDER BY из белого списка ключей сортировки.
// Сортировка по дистанции невозможна в SQL (координаты пользователя
// не хранятся), поэтому для нее остается порядок по рейтингу
func orderClause(sortBy, sortOrder string) string {
	direction := "DESC"
	if sortOrder == domain.SortAsc {
		direction = "ASC"
	}

	switch sortBy {
	case domain.SortByName:
		return fmt.Sprintf(" ORDER BY name %s", direction)
	case domain.SortByCreatedAt:
		return fmt.Sprintf(" ORDER BY created_at %s", direction)
	case domain.SortByRating, domain.SortByDistance, "":
		return fmt.Sprintf(" ORDER BY rating %s NULLS LAST", direction)
	default:
		return " ORDER BY rating DESC NULLS LAST"
	}
}

// ListMissingCoordinates возвращает активные бизнесы без координат
func (r *businessRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]domain.Business, error) {
	query := businessSelectColumns + `
		WHERE is_active = TRUE AND (latitude IS NULL OR longitude IS NULL)
		ORDER BY created_at ASC
		LIMIT $1
	`

	businesses := []domain.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, limit); err != nil {
		r.logger.Error("Failed to list businesses missing coordinates", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return businesses, nil
}

// ListMissingCoordinatesIn - как ListMissingCoordinates, но только для
// перечисленных стран (поэтапное включение рынков)
func (r *businessRepository) ListMissingCoordinatesIn(ctx context.Context, countries []string, limit int) ([]domain.Business, error) {
	query := businessSelectColumns + `
		WHERE is_active = TRUE AND (latitude IS NULL OR longitude IS NULL)
			AND country = ANY($1)
		ORDER BY created_at ASC
		LIMIT $2
	`

	businesses := []domain.Business{}
	if err := r.db.SelectContext(ctx, &businesses, query, pq.Array(countries), limit); err != nil {
		r.logger.Error("Failed to list businesses missing coordinates",
			zap.Strings("countries", countries),
			zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return businesses, nil
}

// UpdateCoordinates проставляет координаты бизнесу
func (r *businessRepository) UpdateCoordinates(ctx context.Context, id string, lat, lon float64) error {
	query := `
		UPDATE businesses
		SET latitude = $2, longitude = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, lat, lon)
	if err != nil {
		r.logger.Error("Failed to update business coordinates", zap.String("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}

	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return apperrors.ErrBusinessNotFound
	}

	return nil
}
