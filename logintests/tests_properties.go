package logintests

// DoPropertyTests covers behaviors that hold across the basic scenarios:
// clearing is repeatable, a failed login never claims success, and a
// successful login never claims failure.
func DoPropertyTests(t *T) {
	t.Run("clearing the form is idempotent", func(t *T) {
		// Same journey twice, each with a fresh page object and session.
		for i := 0; i < 2; i++ {
			page := t.OpenLoginPage()
			page.Navigate().
				LoginForm().
				FillOut("test", "asdf").
				Click("@clearBtn").
				Assert().
				ContainsText("@usernameTxt", "").
				ContainsText("@passwordTxt", "").
				Parent().
				End()
		}
	})

	t.Run("typed values appear in the display fields", func(t *T) {
		// The display fields mirror keystrokes from page script, so this
		// only means anything on a driver that executes javascript.
		t.RequireCapability("javascript")

		page := t.OpenLoginPage()
		page.Navigate().
			LoginForm().
			FillOut("test", "asdf").
			Assert().
			ContainsText("@usernameTxt", "test").
			ContainsText("@passwordTxt", "asdf").
			Parent().
			End()
	})

	t.Run("failed login never reports success", func(t *T) {
		page := t.OpenLoginPage()
		page.Navigate().
			LoginForm().
			Login("test", "asdf").
			Parent().
			Assert().
			ContainsText("@notification", "Invalid").
			NotContainsText("@notification", "Success").
			OnPage().
			End()
	})

	t.Run("non-admin credentials are rejected", func(t *T) {
		globals := t.Globals()

		page := t.OpenLoginPage()
		page.Navigate().
			LoginForm().
			Login(globals.AdminUser+"-not", globals.AdminPass).
			Parent().
			Assert().
			NotContainsText("@notification", "Success").
			OnPage().
			End()
	})

	t.Run("successful login never reports failure", func(t *T) {
		globals := t.Globals()

		page := t.OpenLoginPage()
		page.Navigate().
			LoginForm().
			Login(globals.AdminUser, globals.AdminPass).
			Parent().
			Assert().
			ContainsText("@notification", "Success").
			NotContainsText("@notification", "Invalid").
			OnPage().
			End()
	})
}
