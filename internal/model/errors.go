package model

import "errors"

// Validation errors. They are shown to the user as-is and never change state.
var (
	ErrTextTooShort   = errors.New("digite pelo menos 3 caracteres")
	ErrTextTooLong    = errors.New("a tarefa pode ter no máximo 150 caracteres")
	ErrEmptyNote      = errors.New("adicione um título ou conteúdo para a nota")
	ErrTitleTooLong   = errors.New("o título pode ter no máximo 100 caracteres")
	ErrContentTooLong = errors.New("o conteúdo pode ter no máximo 1000 caracteres")
	ErrUnknownColor   = errors.New("cor fora da paleta")
)
