package iocli

//go:generate moq -out io_mock.go . IO

// IO абстрагирует ввод-вывод CLI, чтобы команды можно было тестировать без терминала
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadPassword читает строку без эха (integration token)
	ReadPassword(prompt string) (string, error)
	// Confirm задаёт вопрос да/нет; пустой ответ означает "нет"
	Confirm(prompt string) (bool, error)
	Write(p []byte) (n int, err error)
}
