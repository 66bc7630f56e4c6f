package errors

import "net/http"

var (
	ErrCountryNotFound = New(
		"COUNTRY_NOT_FOUND",
		"Country not found",
		http.StatusNotFound,
	)

	ErrBusinessNotFound = New(
		"BUSINESS_NOT_FOUND",
		"Business not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidParentID = New(
		"INVALID_PARENT_ID",
		"Parent identifier must not be empty",
		http.StatusBadRequest,
	)

	ErrInvalidLanguage = New(
		"INVALID_LANGUAGE",
		"Unsupported language code",
		http.StatusBadRequest,
	)

	ErrSelectionOrder = New(
		"SELECTION_ORDER",
		"A location level requires its parent level to be selected first",
		http.StatusConflict,
	)

	ErrGeocodeFailed = New(
		"GEOCODE_FAILED",
		"Reverse geocoding failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
