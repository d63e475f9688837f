package utils

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ResetEnv restores the ENV variables from a snapshot taken by os.Environ().
// Usage: defer utils.ResetEnv(t, os.Environ())
func ResetEnv(t *testing.T, environ []string) {
	t.Helper()
	os.Clearenv()
	for _, pair := range environ {
		parts := strings.SplitN(pair, "=", 2)
		assert.NoError(t, os.Setenv(parts[0], parts[1]))
	}
}
