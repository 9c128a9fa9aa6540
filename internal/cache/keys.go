package cache

import "strings"

const (
	GlobalKeyPrefix = "ielts"
)

// GenerateCacheKey builds "ielts:<service>:<objectType>:<identifier>". Optional params are
// joined with "_" and appended as a final segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return baseKey + ":" + strings.Join(paramsKey, "_")
	}
	return baseKey
}

// ResultKey is where a scored test result is cached
func ResultKey(resultID string) string {
	return GenerateCacheKey("reading", "result", resultID)
}
