package util

import (
	"os"
	"strings"
)

const EnvironmentPrefix = "TRIPSEARCH_"

// GetEnvironmentVariables returns every TRIPSEARCH_ variable with the prefix stripped
func GetEnvironmentVariables() map[string]string {
	environmentVariables := map[string]string{}

	for _, variable := range os.Environ() {
		pair := strings.SplitN(variable, "=", 2)
		if len(pair) != 2 || !strings.HasPrefix(pair[0], EnvironmentPrefix) {
			continue
		}

		environmentVariables[strings.TrimPrefix(pair[0], EnvironmentPrefix)] = pair[1]
	}

	return environmentVariables
}
