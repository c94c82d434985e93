package controller

import (
	"github.com/RubachokBoss/progress-log/client/internal/models"
)

// FormReader - то, что контроллер читает из форм и сбрасывает в них
type FormReader interface {
	LogForm() models.LogEntry
	FilterForm() models.FilterCriteria
	SecretKey() string
	ResetLogForm()
	ResetFilterForm()
	ClearSecretKey()
}

type ViewRenderer interface {
	ShowCount(label string)
	ShowEmpty(message string)
	ShowRows(rows []Row)
}

type Confirmer interface {
	Confirm(prompt string) bool
}

// Row - строка таблицы с уже выбранным цветом бейджа статуса
type Row struct {
	Entry models.LogEntry
	Badge string
}
