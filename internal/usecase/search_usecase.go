package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/pkg/errors"
	"github.com/bizli/geo-service/internal/pkg/utils"
)

// SearchUseCase - расширенный поиск бизнесов: термин, категория,
// четыре географических id, радиус и сортировка собираются в один
// плоский фильтр. Ответы кешируются в Redis с TTL
type SearchUseCase struct {
	businessRepo repository.BusinessRepository
	geoUC        *GeographyUseCase
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	businessRepo repository.BusinessRepository,
	geoUC *GeographyUseCase,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SearchUseCase {
	return &SearchUseCase{
		businessRepo: businessRepo,
		geoUC:        geoUC,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

// SearchResult - результат расширенного поиска
type SearchResult struct {
	Businesses []domain.Business `json:"businesses"`
	Total      int               `json:"total"`
	Cached     bool              `json:"-"`
}

// Search выполняет расширенный поиск. Радиусная фильтрация применяется
// только при известной позиции пользователя; после фильтра
// восстанавливается запрошенный ключ сортировки. Сортировка по рейтингу
// при известной позиции перекрывается возрастанием дистанции, как и в
// запросе бизнесов по локации
func (uc *SearchUseCase) Search(ctx context.Context, filters domain.SearchFilters) (*SearchResult, error) {
	if filters.RadiusKm == 0 {
		filters.RadiusKm = domain.DefaultSearchRadiusKm
	}
	if !utils.ValidateRadius(filters.RadiusKm) {
		return nil, errors.ErrInvalidRadius
	}
	if filters.SortBy == "" {
		filters.SortBy = domain.SortByRating
	}
	if filters.SortOrder == "" {
		filters.SortOrder = domain.SortDesc
	}

	key := searchCacheKey(filters)
	if cached, err := uc.cacheRepo.Get(ctx, key); err == nil && cached != nil {
		var result SearchResult
		if err := json.Unmarshal(cached, &result); err == nil {
			result.Cached = true
			return &result, nil
		}
		uc.logger.Warn("Failed to unmarshal cached search result", zap.String("key", key))
	}

	businesses, err := uc.businessRepo.Search(ctx, filters)
	if err != nil {
		uc.logger.Error("Failed to search businesses", zap.Error(err))
		return nil, err
	}

	if filters.UserLat != nil && filters.UserLon != nil {
		businesses = FilterByRadius(businesses, *filters.UserLat, *filters.UserLon, filters.RadiusKm)
		sortFiltered(businesses, filters.SortBy, filters.SortOrder)
	}

	result := &SearchResult{
		Businesses: businesses,
		Total:      len(businesses),
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := uc.cacheRepo.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache search result", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}

// ActiveFilters возвращает чипы активных фильтров с локализованными
// названиями. Географические id разрешаются только по уже загруженным
// коллекциям кеша; незагруженный id отображается как есть
func (uc *SearchUseCase) ActiveFilters(filters domain.SearchFilters, lang string) []domain.ActiveFilter {
	chips := make([]domain.ActiveFilter, 0, 7)

	if filters.Term != "" {
		chips = append(chips, domain.ActiveFilter{Key: "term", Label: filters.Term})
	}
	if filters.Category != "" {
		chips = append(chips, domain.ActiveFilter{Key: "category", Label: filters.Category})
	}
	if filters.CountryID != "" {
		chips = append(chips, domain.ActiveFilter{
			Key:   "country_id",
			Label: uc.geoUC.ResolveName(domain.LevelCountry, filters.CountryID, lang),
		})
	}
	if filters.StateID != "" {
		chips = append(chips, domain.ActiveFilter{
			Key:   "state_id",
			Label: uc.geoUC.ResolveName(domain.LevelState, filters.StateID, lang),
		})
	}
	if filters.DepartmentID != "" {
		chips = append(chips, domain.ActiveFilter{
			Key:   "department_id",
			Label: uc.geoUC.ResolveName(domain.LevelDepartment, filters.DepartmentID, lang),
		})
	}
	if filters.CityID != "" {
		chips = append(chips, domain.ActiveFilter{
			Key:   "city_id",
			Label: uc.geoUC.ResolveName(domain.LevelCity, filters.CityID, lang),
		})
	}
	if filters.RadiusKm != domain.DefaultSearchRadiusKm && filters.RadiusKm != 0 {
		chips = append(chips, domain.ActiveFilter{
			Key:   "radius_km",
			Label: fmt.Sprintf("%.0f km", filters.RadiusKm),
		})
	}

	return chips
}

// RemoveFilter сбрасывает ровно один фильтр к значению по умолчанию.
// Каскадного сброса дочерних географических уровней здесь нет: каскад
// принадлежит селектору, фильтры поиска - независимые плоские поля
func (uc *SearchUseCase) RemoveFilter(filters domain.SearchFilters, key string) domain.SearchFilters {
	switch key {
	case "term":
		filters.Term = ""
	case "category":
		filters.Category = ""
	case "country_id":
		filters.CountryID = ""
	case "state_id":
		filters.StateID = ""
	case "department_id":
		filters.DepartmentID = ""
	case "city_id":
		filters.CityID = ""
	case "radius_km":
		filters.RadiusKm = domain.DefaultSearchRadiusKm
	}
	return filters
}

// sortFiltered восстанавливает запрошенный порядок после радиусного
// фильтра: FilterByRadius сортирует по возрастанию дистанции, что верно
// только для distance asc. Сортировка по имени и дате создания
// применяется заново; рейтинг остается перекрытым дистанцией
func sortFiltered(businesses []domain.Business, sortBy, sortOrder string) {
	desc := sortOrder == domain.SortDesc

	switch sortBy {
	case domain.SortByDistance:
		if desc {
			sort.SliceStable(businesses, func(i, j int) bool {
				return *businesses[i].DistanceKm > *businesses[j].DistanceKm
			})
		}
	case domain.SortByName:
		sort.SliceStable(businesses, func(i, j int) bool {
			if desc {
				return businesses[i].Name > businesses[j].Name
			}
			return businesses[i].Name < businesses[j].Name
		})
	case domain.SortByCreatedAt:
		sort.SliceStable(businesses, func(i, j int) bool {
			if desc {
				return businesses[i].CreatedAt.After(businesses[j].CreatedAt)
			}
			return businesses[i].CreatedAt.Before(businesses[j].CreatedAt)
		})
	}
}

// searchCacheKey собирает детерминированный ключ кеша из фильтров
func searchCacheKey(filters domain.SearchFilters) string {
	lat, lon := 0.0, 0.0
	if filters.UserLat != nil {
		lat = *filters.UserLat
	}
	if filters.UserLon != nil {
		lon = *filters.UserLon
	}

	raw := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%.1f|%.5f|%.5f|%s|%s",
		filters.Term, filters.Category,
		filters.CountryID, filters.StateID, filters.DepartmentID, filters.CityID,
		filters.RadiusKm, lat, lon,
		filters.SortBy, filters.SortOrder,
	)
	sum := sha256.Sum256([]byte(raw))
	return "search:businesses:" + hex.EncodeToString(sum[:16])
}
