package webhook

import (
	"strings"

	"github.com/marcelsud/whatsapp-bridge-api/config"
)

const contentTypeJSON = "application/json"

// BuildHeaders merges, in increasing priority, the configured defaults, the
// secret header and the caller's overrides. Override values that are not
// strings are dropped. Content-Type defaults to JSON when none is set.
func BuildHeaders(defaults []config.HeaderPair, secretHeader, secret string, overrides map[string]any) map[string]string {
	headers := make(map[string]string, len(defaults)+len(overrides)+2)
	for _, p := range defaults {
		setHeader(headers, p.Name, p.Value)
	}
	if secretHeader != "" && secret != "" {
		setHeader(headers, secretHeader, secret)
	}
	for name, v := range overrides {
		value, ok := v.(string)
		if !ok || name == "" {
			continue
		}
		setHeader(headers, name, value)
	}
	if _, ok := lookupHeader(headers, "Content-Type"); !ok {
		headers["Content-Type"] = contentTypeJSON
	}
	return headers
}

// setHeader replaces any existing entry that differs only in case
func setHeader(headers map[string]string, name, value string) {
	for existing := range headers {
		if existing != name && strings.EqualFold(existing, name) {
			delete(headers, existing)
		}
	}
	headers[name] = value
}

func lookupHeader(headers map[string]string, name string) (string, bool) {
	for existing, value := range headers {
		if strings.EqualFold(existing, name) {
			return value, true
		}
	}
	return "", false
}
