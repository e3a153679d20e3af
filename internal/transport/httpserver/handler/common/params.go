package common

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ParseCSV splits a comma separated value, dropping blanks and duplicates.
func ParseCSV(value string) []string {
	parts := strings.Split(value, ",")
	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}

// QueryList accepts both repeated keys and comma separated values.
func QueryList(query url.Values, key string) []string {
	values := query[key]
	if len(values) == 0 {
		values = query[key+"[]"]
	}
	return ParseCSV(strings.Join(values, ","))
}

func QueryIntList(query url.Values, key string) ([]int, error) {
	raw := QueryList(query, key)
	if len(raw) == 0 {
		return nil, nil
	}
	result := make([]int, 0, len(raw))
	for _, item := range raw {
		parsed, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value %q", key, item)
		}
		result = append(result, parsed)
	}
	return result, nil
}

func ParseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func ParseFloatParam(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}
	return &parsed, nil
}

func ParseBoolParam(value string) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
