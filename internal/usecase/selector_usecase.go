package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/domain"
	"github.com/bizli/geo-service/internal/domain/repository"
	"github.com/bizli/geo-service/internal/pkg/errors"
	"github.com/bizli/geo-service/internal/pkg/utils"
)

// ChangeFunc вызывается синхронно при каждом изменении выбора
type ChangeFunc func(domain.LocationSelection)

// SelectorOption - опция конфигурации LocationSelector
type SelectorOption func(*LocationSelector)

// WithNeighborhoods включает пятый уровень каскада (районы)
func WithNeighborhoods() SelectorOption {
	return func(s *LocationSelector) {
		s.includeNeighborhoods = true
	}
}

// WithLanguage задает язык локализованных названий и меток уровней
func WithLanguage(lang string) SelectorOption {
	return func(s *LocationSelector) {
		s.lang = lang
	}
}

// WithOnChange задает обработчик изменений выбора
func WithOnChange(fn ChangeFunc) SelectorOption {
	return func(s *LocationSelector) {
		s.onChange = fn
	}
}

// LocationSelector - каскадный выбор локации по пяти уровням:
// страна -> штат -> департамент -> город -> район (опционально).
// Инвариант каскада обеспечивается самой машиной состояний, а не
// слоем отображения: выбор на уровне L сбрасывает все уровни ниже L
// и загружает опции уровня L+1 через кеш справочника
type LocationSelector struct {
	geoUC    *GeographyUseCase
	geocoder repository.GeocoderRepository
	logger   *zap.Logger

	lang                 string
	includeNeighborhoods bool
	onChange             ChangeFunc

	mu        sync.Mutex
	selection domain.LocationSelection
	status    map[domain.SelectionLevel]domain.LevelStatus

	countries     []domain.Country
	states        []domain.State
	departments   []domain.Department
	cities        []domain.City
	neighborhoods []domain.Neighborhood
	adminLevels   []domain.AdministrativeLevel
}

// NewLocationSelector - создание нового LocationSelector
func NewLocationSelector(
	geoUC *GeographyUseCase,
	geocoder repository.GeocoderRepository,
	logger *zap.Logger,
	opts ...SelectorOption,
) *LocationSelector {
	s := &LocationSelector{
		geoUC:    geoUC,
		geocoder: geocoder,
		logger:   logger,
		lang:     domain.LangEN,
		status: map[domain.SelectionLevel]domain.LevelStatus{
			domain.LevelCountry:      domain.LevelUnselected,
			domain.LevelState:        domain.LevelUnselected,
			domain.LevelDepartment:   domain.LevelUnselected,
			domain.LevelCity:         domain.LevelUnselected,
			domain.LevelNeighborhood: domain.LevelUnselected,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCountries загружает корневой список опций
func (s *LocationSelector) LoadCountries(ctx context.Context) ([]domain.Country, error) {
	countries, err := s.geoUC.LoadCountries(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.countries = countries
	s.mu.Unlock()
	return countries, nil
}

// SelectCountry выбирает страну (корневой уровень, без ограничений).
// Штаты и терминология уровней загружаются одновременно; если у страны
// нет штатов, следующим уровнем открываются департаменты или города
func (s *LocationSelector) SelectCountry(ctx context.Context, countryID string) error {
	if countryID == "" {
		return errors.ErrInvalidParentID
	}

	s.mu.Lock()
	s.selection.CountryID = countryID
	s.status[domain.LevelCountry] = domain.LevelSelected
	s.resetBelow(domain.LevelCountry)
	s.status[domain.LevelState] = domain.LevelOptionsLoading
	s.mu.Unlock()

	s.emitChange()

	var (
		wg        sync.WaitGroup
		states    []domain.State
		statesErr error
	)
	wg.Add(2)

	go func() {
		defer wg.Done()
		states, statesErr = s.geoUC.LoadStates(ctx, countryID)
	}()

	go func() {
		defer wg.Done()
		levels, err := s.geoUC.LoadAdministrativeLevels(ctx, countryID)
		if err != nil {
			s.logger.Warn("Failed to load administrative levels",
				zap.String("country_id", countryID), zap.Error(err))
			return
		}
		s.mu.Lock()
		s.adminLevels = levels
		s.mu.Unlock()
	}()

	wg.Wait()

	if statesErr != nil {
		s.mu.Lock()
		s.status[domain.LevelState] = domain.LevelUnselected
		s.mu.Unlock()
		return statesErr
	}

	s.mu.Lock()
	s.states = states
	s.status[domain.LevelState] = domain.LevelOptionsReady
	s.mu.Unlock()

	// Страна без уровня штатов: открываем следующий населенный уровень
	if len(states) == 0 {
		return s.openCountryFallback(ctx, countryID)
	}
	return nil
}

// openCountryFallback открывает департаменты или города страны, когда
// уровень штатов отсутствует
func (s *LocationSelector) openCountryFallback(ctx context.Context, countryID string) error {
	departments, err := s.geoUC.LoadDepartmentsByCountry(ctx, countryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.departments = departments
	s.status[domain.LevelDepartment] = domain.LevelOptionsReady
	s.mu.Unlock()

	if len(departments) > 0 {
		return nil
	}

	cities, err := s.geoUC.LoadCitiesByCountry(ctx, countryID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cities = cities
	s.status[domain.LevelCity] = domain.LevelOptionsReady
	s.mu.Unlock()
	return nil
}

// SelectState выбирает штат; требует выбранной страны. Если у штата
// нет департаментов, сразу открываются города штата
func (s *LocationSelector) SelectState(ctx context.Context, stateID string) error {
	if stateID == "" {
		return errors.ErrInvalidParentID
	}

	s.mu.Lock()
	if s.selection.CountryID == "" {
		s.mu.Unlock()
		return errors.ErrSelectionOrder
	}
	s.selection.StateID = stateID
	s.status[domain.LevelState] = domain.LevelSelected
	s.resetBelow(domain.LevelState)
	s.status[domain.LevelDepartment] = domain.LevelOptionsLoading
	s.mu.Unlock()

	s.emitChange()

	departments, err := s.geoUC.LoadDepartments(ctx, stateID)
	if err != nil {
		s.mu.Lock()
		s.status[domain.LevelDepartment] = domain.LevelUnselected
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.departments = departments
	s.status[domain.LevelDepartment] = domain.LevelOptionsReady
	s.mu.Unlock()

	// Двухуровневая страна (штат -> город, без департаментов)
	if len(departments) == 0 {
		cities, err := s.geoUC.LoadCitiesByState(ctx, stateID)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.cities = cities
		s.status[domain.LevelCity] = domain.LevelOptionsReady
		s.mu.Unlock()
	}
	return nil
}

// SelectDepartment выбирает департамент; требует выбранной страны.
// Штат может отсутствовать у стран, где департаменты привязаны
// напрямую к стране
func (s *LocationSelector) SelectDepartment(ctx context.Context, departmentID string) error {
	if departmentID == "" {
		return errors.ErrInvalidParentID
	}

	s.mu.Lock()
	if s.selection.CountryID == "" {
		s.mu.Unlock()
		return errors.ErrSelectionOrder
	}
	s.selection.DepartmentID = departmentID
	s.status[domain.LevelDepartment] = domain.LevelSelected
	s.resetBelow(domain.LevelDepartment)
	s.status[domain.LevelCity] = domain.LevelOptionsLoading
	s.mu.Unlock()

	s.emitChange()

	cities, err := s.geoUC.LoadCities(ctx, departmentID)
	if err != nil {
		s.mu.Lock()
		s.status[domain.LevelCity] = domain.LevelUnselected
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.cities = cities
	s.status[domain.LevelCity] = domain.LevelOptionsReady
	s.mu.Unlock()
	return nil
}

// SelectCity выбирает город; требует выбранной страны. Районы
// загружаются только при включенном пятом уровне
func (s *LocationSelector) SelectCity(ctx context.Context, cityID string) error {
	if cityID == "" {
		return errors.ErrInvalidParentID
	}

	s.mu.Lock()
	if s.selection.CountryID == "" {
		s.mu.Unlock()
		return errors.ErrSelectionOrder
	}
	s.selection.CityID = cityID
	s.status[domain.LevelCity] = domain.LevelSelected
	s.resetBelow(domain.LevelCity)
	include := s.includeNeighborhoods
	if include {
		s.status[domain.LevelNeighborhood] = domain.LevelOptionsLoading
	}
	s.mu.Unlock()

	s.emitChange()

	if !include {
		return nil
	}

	neighborhoods, err := s.geoUC.LoadNeighborhoods(ctx, cityID)
	if err != nil {
		s.mu.Lock()
		s.status[domain.LevelNeighborhood] = domain.LevelUnselected
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.neighborhoods = neighborhoods
	s.status[domain.LevelNeighborhood] = domain.LevelOptionsReady
	s.mu.Unlock()
	return nil
}

// SelectNeighborhood выбирает район; требует выбранного города и
// включенного пятого уровня
func (s *LocationSelector) SelectNeighborhood(neighborhoodID string) error {
	if neighborhoodID == "" {
		return errors.ErrInvalidParentID
	}

	s.mu.Lock()
	if !s.includeNeighborhoods || s.selection.CityID == "" {
		s.mu.Unlock()
		return errors.ErrSelectionOrder
	}
	s.selection.NeighborhoodID = neighborhoodID
	s.status[domain.LevelNeighborhood] = domain.LevelSelected
	s.mu.Unlock()

	s.emitChange()
	return nil
}

// resetBelow сбрасывает все уровни ниже заданного вместе с их опциями.
// Вызывается под мьютексом
func (s *LocationSelector) resetBelow(level domain.SelectionLevel) {
	if level < domain.LevelState {
		s.selection.StateID = ""
		s.states = nil
		s.status[domain.LevelState] = domain.LevelUnselected
	}
	if level < domain.LevelDepartment {
		s.selection.DepartmentID = ""
		s.departments = nil
		s.status[domain.LevelDepartment] = domain.LevelUnselected
	}
	if level < domain.LevelCity {
		s.selection.CityID = ""
		s.cities = nil
		s.status[domain.LevelCity] = domain.LevelUnselected
	}
	s.selection.NeighborhoodID = ""
	s.neighborhoods = nil
	s.status[domain.LevelNeighborhood] = domain.LevelUnselected
}

// emitChange синхронно отдает копию текущего выбора подписчику
func (s *LocationSelector) emitChange() {
	if s.onChange == nil {
		return
	}
	s.mu.Lock()
	selection := s.selection
	s.mu.Unlock()
	s.onChange(selection)
}

// Seed заполняет выбор из сохраненного профиля, минуя каскад.
// Загрузки опций для дочерних уровней не выполняются: для отображения
// списков вызовите Hydrate
func (s *LocationSelector) Seed(initial domain.LocationSelection) {
	s.mu.Lock()
	s.selection = initial
	for level, id := range map[domain.SelectionLevel]string{
		domain.LevelCountry:      initial.CountryID,
		domain.LevelState:        initial.StateID,
		domain.LevelDepartment:   initial.DepartmentID,
		domain.LevelCity:         initial.CityID,
		domain.LevelNeighborhood: initial.NeighborhoodID,
	} {
		if id != "" {
			s.status[level] = domain.LevelSelected
		} else {
			s.status[level] = domain.LevelUnselected
		}
	}
	s.mu.Unlock()

	s.emitChange()
}

// Hydrate восстанавливает списки опций для заполненного через Seed
// выбора: идет от листа вверх, дозаполняя отсутствующие родительские
// id из справочника, затем загружает список опций каждого уровня
func (s *LocationSelector) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	selection := s.selection
	s.mu.Unlock()

	// Пустой выбор нечего восстанавливать
	if selection.IsEmpty() {
		return nil
	}

	// Подъем от листа: дозаполняем родительские id
	if selection.CityID != "" {
		city, err := s.geoUC.geoRepo.GetCityByID(ctx, selection.CityID)
		if err != nil {
			return err
		}
		if city != nil {
			if selection.DepartmentID == "" && city.DepartmentID != nil {
				selection.DepartmentID = *city.DepartmentID
			}
			if selection.StateID == "" && city.StateID != nil {
				selection.StateID = *city.StateID
			}
			if selection.CountryID == "" {
				selection.CountryID = city.CountryID
			}
		}
	}
	if selection.DepartmentID != "" {
		department, err := s.geoUC.geoRepo.GetDepartmentByID(ctx, selection.DepartmentID)
		if err != nil {
			return err
		}
		if department != nil {
			if selection.StateID == "" && department.StateID != nil {
				selection.StateID = *department.StateID
			}
			if selection.CountryID == "" {
				selection.CountryID = department.CountryID
			}
		}
	}
	if selection.StateID != "" && selection.CountryID == "" {
		state, err := s.geoUC.geoRepo.GetStateByID(ctx, selection.StateID)
		if err != nil {
			return err
		}
		if state != nil {
			selection.CountryID = state.CountryID
		}
	}

	s.mu.Lock()
	s.selection = selection
	s.mu.Unlock()

	// Спуск: загружаем списки опций каждого заполненного уровня
	countries, err := s.geoUC.LoadCountries(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.countries = countries
	s.mu.Unlock()

	if selection.CountryID == "" {
		return nil
	}

	states, err := s.geoUC.LoadStates(ctx, selection.CountryID)
	if err != nil {
		return err
	}
	levels, err := s.geoUC.LoadAdministrativeLevels(ctx, selection.CountryID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.states = states
	s.adminLevels = levels
	if s.status[domain.LevelState] == domain.LevelUnselected {
		s.status[domain.LevelState] = domain.LevelOptionsReady
	}
	s.mu.Unlock()

	var departments []domain.Department
	if selection.StateID != "" {
		departments, err = s.geoUC.LoadDepartments(ctx, selection.StateID)
	} else {
		departments, err = s.geoUC.LoadDepartmentsByCountry(ctx, selection.CountryID)
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.departments = departments
	if s.status[domain.LevelDepartment] == domain.LevelUnselected && len(departments) > 0 {
		s.status[domain.LevelDepartment] = domain.LevelOptionsReady
	}
	s.mu.Unlock()

	var cities []domain.City
	switch {
	case selection.DepartmentID != "":
		cities, err = s.geoUC.LoadCities(ctx, selection.DepartmentID)
	case selection.StateID != "":
		cities, err = s.geoUC.LoadCitiesByState(ctx, selection.StateID)
	default:
		cities, err = s.geoUC.LoadCitiesByCountry(ctx, selection.CountryID)
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.cities = cities
	if s.status[domain.LevelCity] == domain.LevelUnselected && len(cities) > 0 {
		s.status[domain.LevelCity] = domain.LevelOptionsReady
	}
	s.mu.Unlock()

	if s.includeNeighborhoods && selection.CityID != "" {
		neighborhoods, err := s.geoUC.LoadNeighborhoods(ctx, selection.CityID)
		if err != nil {
			return err
		}
		s.mu.Lock()
		s.neighborhoods = neighborhoods
		if s.status[domain.LevelNeighborhood] == domain.LevelUnselected && len(neighborhoods) > 0 {
			s.status[domain.LevelNeighborhood] = domain.LevelOptionsReady
		}
		s.mu.Unlock()
	}

	return nil
}

// ResolvePosition дополняет текущий выбор координатами и адресом,
// полученным обратным геокодированием. Иерархические id не меняются;
// при ошибке прежнее состояние остается нетронутым
func (s *LocationSelector) ResolvePosition(ctx context.Context, lat, lon float64) (domain.LocationSelection, error) {
	if !utils.ValidateCoordinates(lat, lon) {
		return domain.LocationSelection{}, errors.ErrInvalidCoordinates
	}

	address, err := s.geocoder.ReverseGeocode(ctx, lat, lon, s.lang)
	if err != nil {
		s.logger.Error("Reverse geocode failed",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Error(err))
		return domain.LocationSelection{}, errors.ErrGeocodeFailed
	}

	s.mu.Lock()
	s.selection.Latitude = &lat
	s.selection.Longitude = &lon
	s.selection.FullAddress = address
	selection := s.selection
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(selection)
	}
	return selection, nil
}

// Selection возвращает текущий плоский выбор
func (s *LocationSelector) Selection() domain.LocationSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Status возвращает состояние уровня каскада
func (s *LocationSelector) Status(level domain.SelectionLevel) domain.LevelStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status[level]
}

// StateOptions возвращает текущий список опций уровня штатов
func (s *LocationSelector) StateOptions() []domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states
}

// DepartmentOptions возвращает текущий список опций уровня департаментов
func (s *LocationSelector) DepartmentOptions() []domain.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.departments
}

// CityOptions возвращает текущий список опций уровня городов
func (s *LocationSelector) CityOptions() []domain.City {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cities
}

// NeighborhoodOptions возвращает текущий список опций уровня районов
func (s *LocationSelector) NeighborhoodOptions() []domain.Neighborhood {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.neighborhoods
}

// LevelLabel возвращает страноспецифичную метку уровня на языке
// селектора, с английским фолбэком, если страна не определяет
// терминологию
func (s *LocationSelector) LevelLabel(level domain.SelectionLevel) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var levelNumber int
	var fallback string
	switch level {
	case domain.LevelState:
		levelNumber = domain.AdminLevelState
		fallback = domain.DefaultStateLabel
	case domain.LevelDepartment:
		levelNumber = domain.AdminLevelDepartment
		fallback = domain.DefaultDepartmentLabel
	case domain.LevelCity:
		levelNumber = domain.AdminLevelCity
		fallback = domain.DefaultCityLabel
	default:
		return ""
	}

	for _, al := range s.adminLevels {
		if al.LevelNumber == levelNumber {
			if name := al.Name(s.lang); name != "" {
				return name
			}
		}
	}
	return fallback
}
