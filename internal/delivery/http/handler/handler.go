package handler

import (
	"github.com/bizli/geo-service/internal/domain"
	apperrors "github.com/bizli/geo-service/internal/pkg/errors"
)

// requestLanguage нормализует язык запроса: пустое значение - английский,
// неподдерживаемый код - ошибка валидации
func requestLanguage(lang string) (string, error) {
	if lang == "" {
		return domain.LangEN, nil
	}
	if !domain.IsSupportedLanguage(lang) {
		return "", apperrors.ErrInvalidLanguage
	}
	return lang, nil
}
