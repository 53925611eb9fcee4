package form

import "github.com/rs/zerolog/log"

// LogNotifier пишет подтверждение в лог сервера.
// HTTP-клиент получает то же сообщение в ответе на сохранение.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Info().Str("notice", message).Msg("user acknowledgment")
}
