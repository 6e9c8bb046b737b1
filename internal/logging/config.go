package logging

import (
	"fmt"
	"os"
	"strings"
)

const envVar = "LOGLEVEL"

type tagLevel struct {
	tag   string
	level Level
}

var tagLevels []tagLevel

func init() {
	var errs []error
	defaultLevel, tagLevels, errs = parseDirectives(os.Getenv(envVar), defaultLevel)
	for _, err := range errs {
		fmt.Fprintf(os.Stderr, "Invalid %s directive: %s\n", envVar, err)
	}

	DefaultLogger.Level = defaultLevel
}

// parseDirectives splits s into comma-separated "tag=level" directives. A
// directive without "tag=" replaces the default level.
func parseDirectives(s string, fallback Level) (def Level, tags []tagLevel, errs []error) {
	def = fallback
	for _, d := range strings.Split(s, ",") {
		if d == "" {
			continue
		}
		v := strings.SplitN(d, "=", 2)
		level, err := parseLevel(v[len(v)-1])
		if err != nil {
			errs = append(errs, fmt.Errorf("'%s': %v", d, err))
			continue
		}
		if len(v) == 1 {
			def = level
		} else {
			tags = append(tags, tagLevel{v[0], level})
		}
	}
	return
}

func determineLevel(tag string, fallback Level) Level {
	for _, e := range tagLevels {
		if e.tag == tag {
			return e.level
		}
	}
	return fallback
}
