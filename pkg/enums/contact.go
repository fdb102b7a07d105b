package enums

import "fmt"

// ContactKind separates general contact messages from callback requests.
type ContactKind string

const (
	ContactKindMessage  ContactKind = "message"
	ContactKindCallback ContactKind = "callback"
)

var validContactKinds = []ContactKind{
	ContactKindMessage,
	ContactKindCallback,
}

func (k ContactKind) IsValid() bool {
	for _, candidate := range validContactKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

func ParseContactKind(value string) (ContactKind, error) {
	for _, candidate := range validContactKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid contact kind %q", value)
}
