package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"movie-manager/internal/models"
)

const NoUsersText = "No users found"

// LoginView is the first window: credentials, a status line and the list of
// users that can log in.
type LoginView struct {
	window fyne.Window

	usernameEntry *widget.Entry
	emailEntry    *widget.Entry
	statusText    *canvas.Text
	loginButton   *widget.Button
	exitButton    *widget.Button
	usersBox      *fyne.Container
	progress      *widget.ProgressBarInfinite

	loginHandler func(username, email string)
	exitHandler  func()
}

// NewLoginView builds the login form inside window
func NewLoginView(window fyne.Window) *LoginView {
	view := &LoginView{window: window}
	view.initializeComponents()
	view.buildLayout()
	return view
}

func (lv *LoginView) initializeComponents() {
	lv.usernameEntry = widget.NewEntry()
	lv.usernameEntry.SetPlaceHolder("Enter your username...")
	lv.usernameEntry.OnSubmitted = func(string) { lv.submit() }

	lv.emailEntry = widget.NewEntry()
	lv.emailEntry.SetPlaceHolder("Enter your email...")
	lv.emailEntry.OnSubmitted = func(string) { lv.submit() }

	lv.statusText = canvas.NewText("", theme.Color(theme.ColorNameError))
	lv.statusText.TextSize = theme.CaptionTextSize()

	lv.loginButton = widget.NewButtonWithIcon("Login", theme.LoginIcon(), lv.submit)
	lv.loginButton.Importance = widget.HighImportance
	lv.exitButton = widget.NewButton("Exit", func() {
		if lv.exitHandler != nil {
			lv.exitHandler()
		}
	})

	lv.usersBox = container.NewVBox()
	lv.progress = widget.NewProgressBarInfinite()
	lv.progress.Stop()
	lv.progress.Hide()
}

func (lv *LoginView) buildLayout() {
	title := widget.NewLabelWithStyle("Movie & Series Manager", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitle := widget.NewLabelWithStyle("Please enter your details to log in", fyne.TextAlignCenter, fyne.TextStyle{})

	form := widget.NewForm(
		widget.NewFormItem("Username", lv.usernameEntry),
		widget.NewFormItem("Email", lv.emailEntry),
	)

	buttons := container.NewGridWithColumns(2, lv.loginButton, lv.exitButton)
	users := container.NewVBox(
		widget.NewLabelWithStyle("Available users:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		lv.usersBox,
	)

	content := container.NewVBox(
		title,
		subtitle,
		widget.NewSeparator(),
		form,
		lv.statusText,
		lv.progress,
		buttons,
		widget.NewSeparator(),
		container.NewVScroll(users),
	)
	lv.window.SetContent(container.NewPadded(content))
}

func (lv *LoginView) submit() {
	if lv.loginHandler == nil || lv.loginButton.Disabled() {
		return
	}
	lv.loginHandler(lv.usernameEntry.Text, lv.emailEntry.Text)
}

// SetLoginHandler sets the handler for login attempts
func (lv *LoginView) SetLoginHandler(handler func(username, email string)) {
	lv.loginHandler = handler
}

// SetExitHandler sets the handler for the Exit button
func (lv *LoginView) SetExitHandler(handler func()) {
	lv.exitHandler = handler
}

// SetUsers lists the users that can log in, as "username (email)"
func (lv *LoginView) SetUsers(users []*models.User) {
	fyne.Do(func() {
		lv.usersBox.RemoveAll()
		if len(users) == 0 {
			empty := canvas.NewText(NoUsersText, theme.Color(theme.ColorNameError))
			empty.TextSize = theme.CaptionTextSize()
			lv.usersBox.Add(empty)
			return
		}
		for _, u := range users {
			lv.usersBox.Add(widget.NewLabel(u.Username + " (" + u.Email() + ")"))
		}
	})
}

// UserLines returns the texts currently shown in the users list
func (lv *LoginView) UserLines() []string {
	var out []string
	for _, o := range lv.usersBox.Objects {
		switch w := o.(type) {
		case *widget.Label:
			out = append(out, w.Text)
		case *canvas.Text:
			out = append(out, w.Text)
		}
	}
	return out
}

// ShowStatus shows msg in red when isError is set, otherwise in green
func (lv *LoginView) ShowStatus(msg string, isError bool) {
	fyne.Do(func() {
		lv.statusText.Text = msg
		if isError {
			lv.statusText.Color = theme.Color(theme.ColorNameError)
		} else {
			lv.statusText.Color = theme.Color(theme.ColorNameSuccess)
		}
		lv.statusText.Refresh()
	})
}

// Status returns the status text and whether it is shown as an error
func (lv *LoginView) Status() (string, bool) {
	return lv.statusText.Text, lv.statusText.Color == theme.Color(theme.ColorNameError)
}

// SetBusy disables the form while the catalog loads
func (lv *LoginView) SetBusy(busy bool) {
	fyne.Do(func() {
		if busy {
			lv.loginButton.Disable()
			lv.usernameEntry.Disable()
			lv.emailEntry.Disable()
			lv.progress.Show()
			lv.progress.Start()
			return
		}
		lv.loginButton.Enable()
		lv.usernameEntry.Enable()
		lv.emailEntry.Enable()
		lv.progress.Stop()
		lv.progress.Hide()
	})
}

// ShowError displays an error dialog
func (lv *LoginView) ShowError(title string, err error) {
	fyne.Do(func() {
		d := dialog.NewError(err, lv.window)
		d.Show()
	})
}

func (lv *LoginView) Show() {
	fyne.Do(func() {
		lv.window.Show()
		lv.window.Canvas().Focus(lv.usernameEntry)
	})
}

func (lv *LoginView) Close() {
	fyne.Do(func() {
		lv.window.Close()
	})
}
