package env

import (
	"fmt"
	"strings"
)

const Prefix = "CANVAS_"

type NamingConvention struct {
	prefix string
}

func NewNamingConvention(prefix string) *NamingConvention {
	return &NamingConvention{prefix: prefix}
}

// FlagToEnv converts flag name to ENV variable name
// for example "course-id" -> "CANVAS_COURSE_ID".
func (n *NamingConvention) FlagToEnv(flagName string) string {
	if len(flagName) == 0 {
		panic(fmt.Errorf("flag name cannot be empty"))
	}

	return n.prefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Replace is used as viper.EnvKeyReplacer.
func (n *NamingConvention) Replace(flagName string) string {
	return n.FlagToEnv(flagName)
}

func Files() []string {
	// https://github.com/bkeepers/dotenv#what-other-env-files-can-i-use
	return []string{
		".env.development.local",
		".env.test.local",
		".env.production.local",
		".env.local",
		".env.development",
		".env.test",
		".env.production",
		".env",
	}
}
