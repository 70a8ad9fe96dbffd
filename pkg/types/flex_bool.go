package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexBool normalizes the boolean-ish encodings seen in legacy membership
// payloads: true/false, 1/0, and "1"/"0"/"true"/"false". Internal code only
// ever sees the canonical bool.
type FlexBool bool

// Bool returns the canonical value.
func (f FlexBool) Bool() bool {
	return bool(f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*f = false
		return nil
	}

	var asBool bool
	if err := json.Unmarshal(trimmed, &asBool); err == nil {
		*f = FlexBool(asBool)
		return nil
	}

	var asNumber float64
	if err := json.Unmarshal(trimmed, &asNumber); err == nil {
		*f = FlexBool(asNumber != 0)
		return nil
	}

	var asString string
	if err := json.Unmarshal(trimmed, &asString); err == nil {
		parsed, err := parseBoolString(asString)
		if err != nil {
			return err
		}
		*f = FlexBool(parsed)
		return nil
	}

	return fmt.Errorf("cannot decode %q as boolean", string(trimmed))
}

// MarshalJSON always emits a canonical JSON boolean.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func parseBoolString(value string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	}
	if parsed, err := strconv.ParseBool(normalized); err == nil {
		return parsed, nil
	}
	return false, fmt.Errorf("cannot decode %q as boolean", value)
}
