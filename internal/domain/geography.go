package domain

import "time"

// Supported interface languages for localized reference names
const (
	LangEN = "en"
	LangFR = "fr"
	LangES = "es"
	LangHT = "ht"
)

// IsSupportedLanguage проверяет код языка интерфейса
func IsSupportedLanguage(lang string) bool {
	switch lang {
	case LangEN, LangFR, LangES, LangHT:
		return true
	}
	return false
}

// LocalizedNames - четыре локализованных названия справочной записи
type LocalizedNames struct {
	NameEn string `json:"name_en" db:"name_en"`
	NameFr string `json:"name_fr" db:"name_fr"`
	NameEs string `json:"name_es" db:"name_es"`
	NameHt string `json:"name_ht" db:"name_ht"`
}

// Name возвращает название на запрошенном языке с фолбэком на английский
func (n LocalizedNames) Name(lang string) string {
	var name string
	switch lang {
	case LangFR:
		name = n.NameFr
	case LangES:
		name = n.NameEs
	case LangHT:
		name = n.NameHt
	default:
		name = n.NameEn
	}
	if name == "" {
		name = n.NameEn
	}
	return name
}

// Country - корень географической иерархии
type Country struct {
	ID       string `json:"id" db:"id"`
	ISOCode  string `json:"iso_code" db:"iso_code"`
	LocalizedNames
	CurrencyCode *string   `json:"currency_code,omitempty" db:"currency_code"`
	PhoneCode    *string   `json:"phone_code,omitempty" db:"phone_code"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// State - штат/провинция внутри страны
type State struct {
	ID        string  `json:"id" db:"id"`
	CountryID string  `json:"country_id" db:"country_id"`
	Code      *string `json:"code,omitempty" db:"code"`
	LocalizedNames
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Department - департамент/округ. StateID опционален: в странах без
// уровня штатов департаменты привязаны напрямую к стране
type Department struct {
	ID        string  `json:"id" db:"id"`
	StateID   *string `json:"state_id,omitempty" db:"state_id"`
	CountryID string  `json:"country_id" db:"country_id"`
	LocalizedNames
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// City - город/муниципалитет
type City struct {
	ID           string  `json:"id" db:"id"`
	DepartmentID *string `json:"department_id,omitempty" db:"department_id"`
	StateID      *string `json:"state_id,omitempty" db:"state_id"`
	CountryID    string  `json:"country_id" db:"country_id"`
	LocalizedNames
	Latitude   *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude  *float64 `json:"longitude,omitempty" db:"longitude"`
	Population *int     `json:"population,omitempty" db:"population"`
	IsCapital  bool     `json:"is_capital" db:"is_capital"`
}

// Neighborhood - район города
type Neighborhood struct {
	ID     string `json:"id" db:"id"`
	CityID string `json:"city_id" db:"city_id"`
	LocalizedNames
	Latitude  *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude *float64 `json:"longitude,omitempty" db:"longitude"`
}

// Administrative level numbers (country-specific terminology rungs)
const (
	AdminLevelState      = 1
	AdminLevelDepartment = 2
	AdminLevelCity       = 3
)

// AdministrativeLevel - страноспецифичное название уровня иерархии
// (например "Department" на Гаити против "State/Province" в США)
type AdministrativeLevel struct {
	ID          string `json:"id" db:"id"`
	CountryID   string `json:"country_id" db:"country_id"`
	LevelNumber int    `json:"level_number" db:"level_number"`
	LocalizedNames
	Required bool `json:"required" db:"required"`
}
