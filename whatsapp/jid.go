package whatsapp

import (
	"fmt"
	"strings"
)

const (
	GroupServer       = "g.us"
	DefaultUserServer = "s.whatsapp.net"
)

// IsGroupJID reports whether jid addresses a group
func IsGroupJID(jid string) bool {
	return strings.HasSuffix(jid, "@"+GroupServer)
}

// PhoneFromJID returns the user part of jid
func PhoneFromJID(jid string) string {
	user, _, _ := strings.Cut(jid, "@")
	return user
}

// NormalizeRecipient accepts a phone number, with or without a leading +,
// or a full JID such as 123@s.whatsapp.net or 123-456@g.us.
func NormalizeRecipient(recipient string) (string, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return "", fmt.Errorf("recipient must be provided")
	}

	if user, server, ok := strings.Cut(recipient, "@"); ok {
		if user == "" || server == "" || strings.Contains(server, "@") {
			return "", fmt.Errorf("malformed JID: %s", recipient)
		}
		return recipient, nil
	}

	phone := strings.TrimPrefix(recipient, "+")
	if phone == "" {
		return "", fmt.Errorf("malformed phone number: %s", recipient)
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("malformed phone number: %s", recipient)
		}
	}
	return phone, nil
}
