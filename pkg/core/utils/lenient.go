// Package utils holds shared parsing helpers for inbound data files.
package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// RepairJSON attempts to fix common JSON errors in hand-edited files.
// Uses github.com/RealAlexandreAI/json-repair for intelligent repair.
// Supported repairs:
// - Missing quotes around keys
// - Single quotes instead of double quotes
// - Unclosed arrays/objects
// - TRUE/FALSE/Null instead of true/false/null
// - Trailing commas
// - Comments in JSON
// - Leading/trailing whitespace and markdown code blocks
func RepairJSON(malformed string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformed)
	if err != nil {
		return "", fmt.Errorf("JSON_REPAIR_FAILED: %v", err)
	}
	return repaired, nil
}

// ParseLenient decodes data into v, tolerating the damage hand-edited
// scenario files accumulate. Order of attempts:
// 1. Standard JSON parse
// 2. JSON repair
// 3. Hjson parse (most lenient)
// Fields absent from the input are left untouched in v, so callers can
// pre-seed defaults before decoding.
func ParseLenient(data []byte, v interface{}) error {
	// Try 1: Standard JSON
	if err := json.Unmarshal(data, v); err == nil {
		return nil
	}

	// Try 2: JSON Repair
	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	// Try 3: Hjson (most lenient)
	if err := hjson.Unmarshal(data, v); err == nil {
		return nil
	}

	return fmt.Errorf("LENIENT_PARSE_FAILED: input is not JSON, repairable JSON, or Hjson")
}
