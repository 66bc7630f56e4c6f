// Package docs Bizli Geo Service API.
//
// Гео-сервис платформы бронирования Bizli.
// Предоставляет API для иерархических географических справочников,
// поиска бизнесов по локации и радиусу, расширенного поиска с фильтрами
// и обратного геокодирования позиции пользователя.
//
// Основные возможности:
// - Кешируемые справочники географических уровней с локализацией (en, fr, es, ht)
// - Поиск бизнесов по стране/штату/городу с фильтром по радиусу
// - Расширенный поиск с фильтрами и чипами активных фильтров
// - Обратное геокодирование и гидратация сохраненного выбора локации
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
