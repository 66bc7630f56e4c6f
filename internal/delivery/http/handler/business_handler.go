package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/pkg/utils"
	"github.com/bizli/geo-service/internal/pkg/validator"
	"github.com/bizli/geo-service/internal/usecase"
	"github.com/bizli/geo-service/internal/usecase/dto"
)

// BusinessHandler - обработчик запросов бизнесов
type BusinessHandler struct {
	businessUC *usecase.BusinessUseCase
	searchUC   *usecase.SearchUseCase
	logger     *zap.Logger
}

// NewBusinessHandler - создание нового BusinessHandler
func NewBusinessHandler(
	businessUC *usecase.BusinessUseCase,
	searchUC *usecase.SearchUseCase,
	logger *zap.Logger,
) *BusinessHandler {
	return &BusinessHandler{
		businessUC: businessUC,
		searchUC:   searchUC,
		logger:     logger,
	}
}

// GetByLocation godoc
// @Summary Бизнесы по локации
// @Description Возвращает активные бизнесы страны (опционально штата/города) по убыванию рейтинга. При заданных radius_km, user_lat и user_lon остаются только бизнесы в радиусе, отсортированные по возрастанию дистанции.
// @Tags Businesses
// @Produce json
// @Param country query string true "Страна (денормализованная строка)"
// @Param state query string false "Штат/провинция"
// @Param city query string false "Город"
// @Param radius_km query number false "Радиус поиска, км (1-100)"
// @Param user_lat query number false "Широта пользователя"
// @Param user_lon query number false "Долгота пользователя"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Business}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/businesses [get]
func (h *BusinessHandler) GetByLocation(c *fiber.Ctx) error {
	var req dto.BusinessLocationRequest
	req.Country = c.Query("country")
	req.State = c.Query("state")
	req.City = c.Query("city")
	if v := c.QueryFloat("radius_km", -1); v >= 0 {
		req.RadiusKm = &v
	}
	if v := c.QueryFloat("user_lat", -1000); v > -1000 {
		req.UserLat = &v
	}
	if v := c.QueryFloat("user_lon", -1000); v > -1000 {
		req.UserLon = &v
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	businesses, err := h.businessUC.GetBusinessesByLocation(c.Context(), domain.BusinessLocationQuery{
		Country:  req.Country,
		State:    req.State,
		City:     req.City,
		RadiusKm: req.RadiusKm,
		UserLat:  req.UserLat,
		UserLon:  req.UserLon,
	})
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, businesses, &utils.Meta{Total: len(businesses)})
}

// Search godoc
// @Summary Расширенный поиск бизнесов
// @Description Плоский фильтр: термин, категория, четыре географических id, радиус (1-100, по умолчанию 25) и сортировка. Ответ включает чипы активных фильтров с локализованными названиями.
// @Tags Businesses
// @Accept json
// @Produce json
// @Param request body dto.BusinessSearchRequest true "Фильтры поиска"
// @Success 200 {object} utils.SuccessResponse{data=dto.BusinessSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/businesses/search [post]
func (h *BusinessHandler) Search(c *fiber.Ctx) error {
	var req dto.BusinessSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	lang, err := requestLanguage(req.Language)
	if err != nil {
		return utils.SendError(c, err)
	}

	filters := domain.SearchFilters{
		Term:         req.Term,
		Category:     req.Category,
		CountryID:    req.CountryID,
		StateID:      req.StateID,
		DepartmentID: req.DepartmentID,
		CityID:       req.CityID,
		RadiusKm:     req.RadiusKm,
		UserLat:      req.UserLat,
		UserLon:      req.UserLon,
		SortBy:       req.SortBy,
		SortOrder:    req.SortOrder,
	}

	result, err := h.searchUC.Search(c.Context(), filters)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.BusinessSearchResponse{
		Businesses:    result.Businesses,
		Total:         result.Total,
		ActiveFilters: h.searchUC.ActiveFilters(filters, lang),
	}, &utils.Meta{
		Total:  result.Total,
		Cached: result.Cached,
	})
}
