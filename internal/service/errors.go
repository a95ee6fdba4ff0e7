package service

import "errors"

// Доменные ошибки сервисного слоя. Транспортный слой отображает их
// в HTTP-статусы через errors.Is.
var (
	// ErrAssetNotFound — asset_id при создании заказа не ссылается на существующий пакет.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrInvalidToken — токен не соответствует ни одному заказу.
	ErrInvalidToken = errors.New("invalid token")
	// ErrOrderNotActive — статус заказа отличен от "paid".
	ErrOrderNotActive = errors.New("order not active")
	// ErrLinkExpired — срок действия ссылки истёк.
	ErrLinkExpired = errors.New("link expired")
	// ErrDownloadsExhausted — бюджет скачиваний заказа исчерпан.
	ErrDownloadsExhausted = errors.New("no downloads left")
	// ErrAssetMissing — заказ ссылается на пакет, которого больше нет.
	ErrAssetMissing = errors.New("asset missing")
	// ErrFilePathNotSet — у пакета не задан путь к файлу либо путь выходит за корень загрузок.
	ErrFilePathNotSet = errors.New("file path not set for asset")
	// ErrFileNotFound — файл пакета отсутствует на диске.
	ErrFileNotFound = errors.New("file not found on server")
)
