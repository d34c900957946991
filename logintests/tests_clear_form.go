package logintests

// DoClearFormTest fills in both credential fields and then uses the form's
// clear control, verifying that both display fields read back empty.
func DoClearFormTest(t *T) {
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
