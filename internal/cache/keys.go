package cache

import "strings"

const (
	GlobalKeyPrefix = "wikiquiz"

	quizServiceName = "quiz"
	quizObjectType  = "detail"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizDetailKey is the key of a cached quiz detail response
func QuizDetailKey(quizID string) string {
	return GenerateCacheKey(quizServiceName, quizObjectType, quizID)
}

// QuizKeyPrefix matches every cached quiz detail
func QuizKeyPrefix() string {
	return strings.Join([]string{GlobalKeyPrefix, quizServiceName, ""}, ":")
}
