package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/pkg/utils"
	"github.com/bizli/geo-service/internal/usecase"
)

// GeographyHandler - обработчик справочника географии
type GeographyHandler struct {
	geoUC  *usecase.GeographyUseCase
	logger *zap.Logger
}

// NewGeographyHandler - создание нового GeographyHandler
func NewGeographyHandler(geoUC *usecase.GeographyUseCase, logger *zap.Logger) *GeographyHandler {
	return &GeographyHandler{
		geoUC:  geoUC,
		logger: logger,
	}
}

// GetCountries godoc
// @Summary Список стран
// @Description Возвращает полный список стран с четырьмя локализованными названиями. Загружается из БД один раз на процесс.
// @Tags Geography
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Country}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries [get]
func (h *GeographyHandler) GetCountries(c *fiber.Ctx) error {
	countries, err := h.geoUC.LoadCountries(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, countries, &utils.Meta{Total: len(countries)})
}

// GetStates godoc
// @Summary Штаты/провинции страны
// @Tags Geography
// @Produce json
// @Param id path string true "ID страны"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.State}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{id}/states [get]
func (h *GeographyHandler) GetStates(c *fiber.Ctx) error {
	states, err := h.geoUC.LoadStates(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, states, &utils.Meta{Total: len(states)})
}

// GetDepartmentsByCountry godoc
// @Summary Департаменты, привязанные напрямую к стране
// @Tags Geography
// @Produce json
// @Param id path string true "ID страны"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Department}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{id}/departments [get]
func (h *GeographyHandler) GetDepartmentsByCountry(c *fiber.Ctx) error {
	departments, err := h.geoUC.LoadDepartmentsByCountry(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, departments, &utils.Meta{Total: len(departments)})
}

// GetCitiesByCountry godoc
// @Summary Города страны
// @Tags Geography
// @Produce json
// @Param id path string true "ID страны"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.City}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{id}/cities [get]
func (h *GeographyHandler) GetCitiesByCountry(c *fiber.Ctx) error {
	cities, err := h.geoUC.LoadCitiesByCountry(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, cities, &utils.Meta{Total: len(cities)})
}

// GetAdministrativeLevels godoc
// @Summary Терминология уровней иерархии для страны
// @Tags Geography
// @Produce json
// @Param id path string true "ID страны"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AdministrativeLevel}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{id}/administrative-levels [get]
func (h *GeographyHandler) GetAdministrativeLevels(c *fiber.Ctx) error {
	levels, err := h.geoUC.LoadAdministrativeLevels(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, levels, &utils.Meta{Total: len(levels)})
}

// GetDepartments godoc
// @Summary Департаменты штата
// @Tags Geography
// @Produce json
// @Param id path string true "ID штата"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Department}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/states/{id}/departments [get]
func (h *GeographyHandler) GetDepartments(c *fiber.Ctx) error {
	departments, err := h.geoUC.LoadDepartments(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, departments, &utils.Meta{Total: len(departments)})
}

// GetCitiesByState godoc
// @Summary Города штата
// @Tags Geography
// @Produce json
// @Param id path string true "ID штата"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.City}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/states/{id}/cities [get]
func (h *GeographyHandler) GetCitiesByState(c *fiber.Ctx) error {
	cities, err := h.geoUC.LoadCitiesByState(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, cities, &utils.Meta{Total: len(cities)})
}

// GetCities godoc
// @Summary Города департамента
// @Tags Geography
// @Produce json
// @Param id path string true "ID департамента"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.City}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/departments/{id}/cities [get]
func (h *GeographyHandler) GetCities(c *fiber.Ctx) error {
	cities, err := h.geoUC.LoadCities(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, cities, &utils.Meta{Total: len(cities)})
}

// GetNeighborhoods godoc
// @Summary Районы города
// @Tags Geography
// @Produce json
// @Param id path string true "ID города"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Neighborhood}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/geo/cities/{id}/neighborhoods [get]
func (h *GeographyHandler) GetNeighborhoods(c *fiber.Ctx) error {
	neighborhoods, err := h.geoUC.LoadNeighborhoods(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, neighborhoods, &utils.Meta{Total: len(neighborhoods)})
}

// PreloadCountry godoc
// @Summary Прогрев кеша для страны
// @Description Одновременно загружает штаты и терминологию уровней для существующей страны. Ошибки загрузки логируются, ответ успешный.
// @Tags Geography
// @Produce json
// @Param id path string true "ID страны"
// @Success 202 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/geo/countries/{id}/preload [post]
func (h *GeographyHandler) PreloadCountry(c *fiber.Ctx) error {
	if err := h.geoUC.VerifyCountry(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	h.geoUC.PreloadCountryData(c.Context(), c.Params("id"))
	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{
		Data: fiber.Map{"status": "preloaded"},
	})
}

// ClearCache godoc
// @Summary Сброс кеша справочника
// @Description Сбрасывает все keyed-коллекции кеша; список стран остается.
// @Tags Geography
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/geo/cache [delete]
func (h *GeographyHandler) ClearCache(c *fiber.Ctx) error {
	h.geoUC.ClearCache()
	return utils.SendSuccess(c, fiber.Map{"status": "cleared"}, nil)
}
