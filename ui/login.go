package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"magnecruit-client/api"
	"magnecruit-client/utils"
)

// ShowLoginDialog presents the modal login form. It re-opens itself on a
// failed attempt; the rest of the window stays read-only until login.
func ShowLoginDialog(app *App) {
	email := widget.NewEntry()
	email.SetPlaceHolder("you@company.com")
	password := widget.NewPasswordEntry()
	errorLabel := widget.NewLabel("")
	errorLabel.Importance = widget.DangerImportance
	errorLabel.Hide()

	items := []*widget.FormItem{
		widget.NewFormItem("Email", email),
		widget.NewFormItem("Password", password),
		widget.NewFormItem("", errorLabel),
	}

	var form dialog.Dialog
	form = dialog.NewForm("Log in to Magnecruit", "Log in", "Quit", items,
		func(confirmed bool) {
			if !confirmed {
				app.fyneApp.Quit()
				return
			}
			utils.SafeGo(app.logger, "login", func() {
				err := app.ctrl.Login(context.Background(), email.Text, password.Text)
				fyne.Do(func() {
					if err == nil {
						return
					}
					app.loginShown = false
					if errors.Is(err, api.ErrUnauthorized) {
						errorLabel.SetText("Invalid email or password")
					} else {
						errorLabel.SetText("Login failed, check the server address")
						app.logger.Error("Login failed: %v", err)
					}
					errorLabel.Show()
					app.loginShown = true
					form.Show()
				})
			})
		}, app.window)

	form.Resize(fyne.NewSize(360, 220))
	form.Show()
}
