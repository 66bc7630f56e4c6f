package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
)

type geographyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewGeographyRepository создает новый экземпляр GeographyRepository
func NewGeographyRepository(db *DB) repository.GeographyRepository {
	return &geographyRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// GetCountries возвращает полный список стран
func (r *geographyRepository) GetCountries(ctx context.Context) ([]domain.Country, error) {
	query := `
		SELECT id, iso_code,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			currency_code, phone_code, created_at
		FROM countries
		ORDER BY name_en ASC
	`

	countries := []domain.Country{}
	if err := r.db.SelectContext(ctx, &countries, query); err != nil {
		r.logger.Error("Failed to load countries", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return countries, nil
}

// GetStatesByCountry возвращает штаты/провинции страны
func (r *geographyRepository) GetStatesByCountry(ctx context.Context, countryID string) ([]domain.State, error) {
	query := `
		SELECT id, country_id, code,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM states
		WHERE country_id = $1
		ORDER BY name_en ASC
	`

	states := []domain.State{}
	if err := r.db.SelectContext(ctx, &states, query, countryID); err != nil {
		r.logger.Error("Failed to load states", zap.String("country_id", countryID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return states, nil
}

// GetDepartmentsByState возвращает департаменты штата
func (r *geographyRepository) GetDepartmentsByState(ctx context.Context, stateID string) ([]domain.Department, error) {
	query := `
		SELECT id, state_id, country_id,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM departments
		WHERE state_id = $1
		ORDER BY name_en ASC
	`

	departments := []domain.Department{}
	if err := r.db.SelectContext(ctx, &departments, query, stateID); err != nil {
		r.logger.Error("Failed to load departments", zap.String("state_id", stateID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return departments, nil
}

// GetDepartmentsByCountry возвращает департаменты, привязанные напрямую
// к стране (иерархия без уровня штатов)
func (r *geographyRepository) GetDepartmentsByCountry(ctx context.Context, countryID string) ([]domain.Department, error) {
	query := `
		SELECT id, state_id, country_id,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM departments
		WHERE country_id = $1
		ORDER BY name_en ASC
	`

	departments := []domain.Department{}
	if err := r.db.SelectContext(ctx, &departments, query, countryID); err != nil {
		r.logger.Error("Failed to load departments by country", zap.String("country_id", countryID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return departments, nil
}

const citySelectColumns = `
		SELECT id, department_id, state_id, country_id,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude, population, is_capital
		FROM cities
`

// GetCitiesByDepartment возвращает города департамента
func (r *geographyRepository) GetCitiesByDepartment(ctx context.Context, departmentID string) ([]domain.City, error) {
	query := citySelectColumns + `
		WHERE department_id = $1
		ORDER BY name_en ASC
	`

	cities := []domain.City{}
	if err := r.db.SelectContext(ctx, &cities, query, departmentID); err != nil {
		r.logger.Error("Failed to load cities", zap.String("department_id", departmentID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return cities, nil
}

// GetCitiesByState возвращает города штата
func (r *geographyRepository) GetCitiesByState(ctx context.Context, stateID string) ([]domain.City, error) {
	query := citySelectColumns + `
		WHERE state_id = $1
		ORDER BY name_en ASC
	`

	cities := []domain.City{}
	if err := r.db.SelectContext(ctx, &cities, query, stateID); err != nil {
		r.logger.Error("Failed to load cities by state", zap.String("state_id", stateID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return cities, nil
}

// GetCitiesByCountry возвращает города страны
func (r *geographyRepository) GetCitiesByCountry(ctx context.Context, countryID string) ([]domain.City, error) {
	query := citySelectColumns + `
		WHERE country_id = $1
		ORDER BY name_en ASC
	`

	cities := []domain.City{}
	if err := r.db.SelectContext(ctx, &cities, query, countryID); err != nil {
		r.logger.Error("Failed to load cities by country", zap.String("country_id", countryID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return cities, nil
}

// GetNeighborhoodsByCity возвращает районы города
func (r *geographyRepository) GetNeighborhoodsByCity(ctx context.Context, cityID string) ([]domain.Neighborhood, error) {
	query := `
		SELECT id, city_id,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM neighborhoods
		WHERE city_id = $1
		ORDER BY name_en ASC
	`

	neighborhoods := []domain.Neighborhood{}
	if err := r.db.SelectContext(ctx, &neighborhoods, query, cityID); err != nil {
		r.logger.Error("Failed to load neighborhoods", zap.String("city_id", cityID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return neighborhoods, nil
}

// GetAdministrativeLevels возвращает терминологию уровней для страны
func (r *geographyRepository) GetAdministrativeLevels(ctx context.Context, countryID string) ([]domain.AdministrativeLevel, error) {
	query := `
		SELECT id, country_id, level_number,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			required
		FROM administrative_levels
		WHERE country_id = $1
		ORDER BY level_number ASC
	`

	levels := []domain.AdministrativeLevel{}
	if err := r.db.SelectContext(ctx, &levels, query, countryID); err != nil {
		r.logger.Error("Failed to load administrative levels", zap.String("country_id", countryID), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return levels, nil
}

// GetStateByID возвращает штат по id
func (r *geographyRepository) GetStateByID(ctx context.Context, id string) (*domain.State, error) {
	query := `
		SELECT id, country_id, code,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM states
		WHERE id = $1
	`

	var state domain.State
	err := r.db.GetContext(ctx, &state, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get state by id", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &state, nil
}

// GetDepartmentByID возвращает департамент по id
func (r *geographyRepository) GetDepartmentByID(ctx context.Context, id string) (*domain.Department, error) {
	query := `
		SELECT id, state_id, country_id,
			COALESCE(name_en, '') AS name_en, COALESCE(name_fr, '') AS name_fr,
			COALESCE(name_es, '') AS name_es, COALESCE(name_ht, '') AS name_ht,
			latitude, longitude
		FROM departments
		WHERE id = $1
	`

	var department domain.Department
	err := r.db.GetContext(ctx, &department, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department by id", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &department, nil
}

// GetCityByID возвращает город по id
func (r *geographyRepository) GetCityByID(ctx context.Context, id string) (*domain.City, error) {
	query := citySelectColumns + `
		WHERE id = $1
	`

	var city domain.City
	err := r.db.GetContext(ctx, &city, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get city by id", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	return &city, nil
}
