package internal

import "os"

// localeEnvVars are checked in order; LC_MONETARY is the most specific for currency
var localeEnvVars = []string{"DEBTSIM_LOCALE", "LC_MONETARY", "LC_ALL", "LANG"}

// detectSystemLocale returns the locale string from the environment,
// or empty string if no usable locale is set.
func detectSystemLocale() string {
	for _, envVar := range localeEnvVars {
		locale := os.Getenv(envVar)
		if locale != "" && locale != "C" && locale != "POSIX" {
			return locale
		}
	}
	return ""
}
