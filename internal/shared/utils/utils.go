package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
)

// UnmarshalTask decodes the JSON payload of an asynq task
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if err := json.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("invalid payload for %s: %w", t.Type(), err)
	}
	return nil
}

// OnlyDigits strips everything but 0-9 ("529.982.247-25" -> "52998224725")
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCode upper-cases and trims user-entered codes
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
