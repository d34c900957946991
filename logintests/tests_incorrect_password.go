package logintests

// DoIncorrectPasswordTest submits known-bad credentials and verifies that
// the form keeps the submitted values and that the notification area
// reports an invalid login rather than a success.
func DoIncorrectPasswordTest(t *T) {
	page := t.OpenLoginPage()
	page.Navigate().
		LoginForm().
		Login("test", "asdf").
		Assert().
		Value("@usernameInput", "test").
		Value("@passwordInput", "asdf").
		Parent().
		Assert().
		ContainsText("@notification", "Invalid").
		OnPage().
		End()
}
