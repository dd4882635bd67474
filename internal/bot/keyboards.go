package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"jandita-bot/internal/view"
)

// createPlanKeyboard una fila de botones por fila de la cuadrícula
func createPlanKeyboard(grid view.Grid) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, cells := range grid.Rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, cell := range cells {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(cell.Label, cell.Action))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
