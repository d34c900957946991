package logintests

// DoLoginTest submits the configured admin credentials and verifies that
// the notification area reports a successful login.
func DoLoginTest(t *T) {
	globals := t.Globals()

	page := t.OpenLoginPage()
	page.Navigate().
		LoginForm().
		Login(globals.AdminUser, globals.AdminPass).
		Parent().
		Assert().
		ContainsText("@notification", "Success").
		OnPage().
		End()
}
