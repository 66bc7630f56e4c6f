package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/pkg/utils"
	"github.com/bizli/geo-service/internal/pkg/validator"
	"github.com/bizli/geo-service/internal/usecase"
	"github.com/bizli/geo-service/internal/usecase/dto"
)

// SelectionHandler - обработчик операций каскадного выбора локации
type SelectionHandler struct {
	geoUC    *usecase.GeographyUseCase
	geocoder repository.GeocoderRepository
	logger   *zap.Logger
}

// NewSelectionHandler - создание нового SelectionHandler
func NewSelectionHandler(
	geoUC *usecase.GeographyUseCase,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
) *SelectionHandler {
	return &SelectionHandler{
		geoUC:    geoUC,
		geocoder: geocoder,
		logger:   logger,
	}
}

// ResolvePosition godoc
// @Summary Обратное геокодирование позиции
// @Description Дополняет переданный иерархический выбор координатами и человекочитаемым адресом. Идентификаторы уровней не изменяются.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.ResolvePositionRequest true "Координаты и текущий выбор"
// @Success 200 {object} utils.SuccessResponse{data=dto.ResolvePositionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/locations/resolve [post]
func (h *SelectionHandler) ResolvePosition(c *fiber.Ctx) error {
	var req dto.ResolvePositionRequest
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

	selector := usecase.NewLocationSelector(h.geoUC, h.geocoder, h.logger,
		usecase.WithLanguage(lang),
		usecase.WithNeighborhoods(),
	)
	selector.Seed(domain.LocationSelection{
		CountryID:      req.CountryID,
		StateID:        req.StateID,
		DepartmentID:   req.DepartmentID,
		CityID:         req.CityID,
		NeighborhoodID: req.NeighborhoodID,
	})

	selection, err := selector.ResolvePosition(c.Context(), req.Lat, req.Lon)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.ResolvePositionResponse{Selection: selection}, nil)
}

// HydrateSelection godoc
// @Summary Гидратация сохраненного выбора
// @Description Восстанавливает списки опций всех уровней для сохраненного выбора: от листа вверх дозаполняются родительские id, затем загружаются списки опций через кеш.
// @Tags Locations
// @Accept json
// @Produce json
// @Param request body dto.HydrateSelectionRequest true "Сохраненный выбор"
// @Success 200 {object} utils.SuccessResponse{data=dto.SelectionOptionsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/locations/hydrate [post]
func (h *SelectionHandler) HydrateSelection(c *fiber.Ctx) error {
	var req dto.HydrateSelectionRequest
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

	opts := []usecase.SelectorOption{usecase.WithLanguage(lang)}
	if req.Neighborhoods {
		opts = append(opts, usecase.WithNeighborhoods())
	}

	selector := usecase.NewLocationSelector(h.geoUC, h.geocoder, h.logger, opts...)
	selector.Seed(domain.LocationSelection{
		CountryID:      req.CountryID,
		StateID:        req.StateID,
		DepartmentID:   req.DepartmentID,
		CityID:         req.CityID,
		NeighborhoodID: req.NeighborhoodID,
	})

	if err := selector.Hydrate(c.Context()); err != nil {
		return utils.SendError(c, err)
	}

	countries, err := selector.LoadCountries(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, dto.SelectionOptionsResponse{
		Selection:     selector.Selection(),
		Countries:     countries,
		States:        selector.StateOptions(),
		Departments:   selector.DepartmentOptions(),
		Cities:        selector.CityOptions(),
		Neighborhoods: selector.NeighborhoodOptions(),
		Labels: dto.SelectionLabels{
			State:      selector.LevelLabel(domain.LevelState),
			Department: selector.LevelLabel(domain.LevelDepartment),
			City:       selector.LevelLabel(domain.LevelCity),
		},
	}, nil)
}
