package remote

import "fmt"

// Source указывает, какой удаленный источник вернул ошибку.
type Source string

const (
	SourceProfile  Source = "profile"
	SourceLocation Source = "location"
)

// FetchError - сетевая ошибка, неуспешный статус или нечитаемое тело ответа.
// Такие ошибки только логируются и никогда не показываются пользователю.
type FetchError struct {
	Source     Source
	StatusCode int // 0, если ответа не было
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
