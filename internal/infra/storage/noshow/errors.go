package noshow

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись о неявках не найдена
	ErrRecordNotFound = errors.New("noshow.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("noshow.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("noshow.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("noshow.repository: failed to scan row")
)
