// Package useragent derives coarse device and browser classes from raw
// User-Agent strings for click analytics.
package useragent

import "strings"

// Device classes.
const (
	DeviceMobile  = "mobile"
	DeviceDesktop = "desktop"
)

// BrowserOther is the fallback class when no browser rule matches.
const BrowserOther = "other"

// deviceTokens mark a user agent as mobile when any of them occurs,
// case-insensitively, anywhere in the string.
var deviceTokens = []string{"mobile", "android", "iphone", "ipad", "tablet"}

// browserRules are evaluated in order; the first matching substring wins.
// The order is load-bearing: most real browsers advertise both "Chrome" and
// "Safari", and the Chrome rule is deliberately tried first so they classify
// as chrome. Matching is case-sensitive against the vendor token.
var browserRules = []struct {
	token string
	class string
}{
	{"Chrome", "chrome"},
	{"Firefox", "firefox"},
	{"Safari", "safari"},
	{"Edge", "edge"},
}

// Device returns "mobile" or "desktop" for the given User-Agent string.
func Device(userAgent string) string {
	ua := strings.ToLower(userAgent)
	for _, token := range deviceTokens {
		if strings.Contains(ua, token) {
			return DeviceMobile
		}
	}
	return DeviceDesktop
}

// Browser returns the coarse browser class for the given User-Agent string,
// or "other" when none of the known vendor tokens occur.
func Browser(userAgent string) string {
	for _, rule := range browserRules {
		if strings.Contains(userAgent, rule.token) {
			return rule.class
		}
	}
	return BrowserOther
}
