package devenv

// CloudTestConfig holds BrowserStack credentials for live connection
// tests, read from dev/.state/browserstack.json5.
type CloudTestConfig struct {
	Username  string `json:"username"`
	AccessKey string `json:"access_key"`
}

// TranslatorTestConfig holds a RapidAPI key for live translation
// tests, read from dev/.state/translator.json5.
type TranslatorTestConfig struct {
	ApiKey string `json:"api_key"`
}
