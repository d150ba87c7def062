// (c) Copyright Tracelet Inc. 2026

package tracelet

import (
	"os"
	"strings"
)

// Environment variables consumed by DefaultOptions
const (
	// ServiceNameEnvVar overrides the service name reported with every
	// lifecycle marker annotation
	ServiceNameEnvVar = "TRACELET_SERVICE"
	// TagsEnvVar holds default annotations to attach to every span
	TagsEnvVar = "TRACELET_TAGS"
)

func serviceNameFromEnv() string {
	return strings.TrimSpace(os.Getenv(ServiceNameEnvVar))
}

func annotationsFromEnv() []Annotation {
	s, ok := os.LookupEnv(TagsEnvVar)
	if !ok {
		return nil
	}

	return parseTags(s)
}

// parseTags parses the tags string passed via TRACELET_TAGS.
// The tag string is a comma-separated list of keys optionally followed by an '=' character and a string value:
//
//	TRACELET_TAGS := key1[=value1][,key2[=value2],...]
//
// The leading and trailing space is truncated from key names, values are used as-is. If a key does not have
// a value associated, the value is left empty.
func parseTags(s string) []Annotation {
	var tags []Annotation

	for _, tag := range strings.Split(s, ",") {
		kv := strings.SplitN(tag, "=", 2)

		k := strings.TrimSpace(kv[0])
		if k == "" {
			continue
		}

		var v string
		if len(kv) > 1 {
			v = kv[1]
		}

		tags = append(tags, Annotation{Key: k, Value: v})
	}

	return tags
}
