package domain

// SelectionLevel - уровень каскадного выбора локации
type SelectionLevel int

const (
	LevelCountry SelectionLevel = iota
	LevelState
	LevelDepartment
	LevelCity
	LevelNeighborhood
)

// String возвращает имя уровня для логов и ошибок
func (l SelectionLevel) String() string {
	switch l {
	case LevelCountry:
		return "country"
	case LevelState:
		return "state"
	case LevelDepartment:
		return "department"
	case LevelCity:
		return "city"
	case LevelNeighborhood:
		return "neighborhood"
	}
	return "unknown"
}

// LevelStatus - состояние одного уровня каскада
type LevelStatus int

const (
	LevelUnselected LevelStatus = iota
	LevelOptionsLoading
	LevelOptionsReady
	LevelSelected
)

// String возвращает имя состояния уровня
func (s LevelStatus) String() string {
	switch s {
	case LevelUnselected:
		return "unselected"
	case LevelOptionsLoading:
		return "options-loading"
	case LevelOptionsReady:
		return "options-ready"
	case LevelSelected:
		return "selected"
	}
	return "unknown"
}

// Fallback labels when a country defines no administrative levels
const (
	DefaultStateLabel      = "State/Province"
	DefaultDepartmentLabel = "Department/District"
	DefaultCityLabel       = "City/Municipality"
)

// LocationSelection - плоский результат каскадного выбора.
// Идентификаторы пустые, если уровень не выбран; координаты и адрес
// заполняются только через геокодирование или сохраненный профиль
type LocationSelection struct {
	CountryID      string   `json:"country_id,omitempty"`
	StateID        string   `json:"state_id,omitempty"`
	DepartmentID   string   `json:"department_id,omitempty"`
	CityID         string   `json:"city_id,omitempty"`
	NeighborhoodID string   `json:"neighborhood_id,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	FullAddress    string   `json:"full_address,omitempty"`
}

// IsEmpty проверяет, что не выбран ни один уровень
func (s LocationSelection) IsEmpty() bool {
	return s.CountryID == "" && s.StateID == "" && s.DepartmentID == "" &&
		s.CityID == "" && s.NeighborhoodID == ""
}
