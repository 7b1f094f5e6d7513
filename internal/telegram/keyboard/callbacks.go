package keyboard

import (
	"fmt"
	"strings"
)

// CallbackData is a parsed "action:value" callback payload.
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback splits callback data in the "action:value" form.
func ParseCallback(data string) (CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return CallbackData{}, fmt.Errorf("malformed callback data %q", data)
	}
	return CallbackData{Action: parts[0], Value: parts[1]}, nil
}
