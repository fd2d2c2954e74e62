package constants

import (
	"os"
	"strconv"
)

const (
	DefaultAddr        = ":8080"
	DefaultPresetTable = "musictools-presets"
	DefaultRegion      = "localhost"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetOutDir() string {
	return getEnv("MUSICTOOLS_OUT_DIR", "./out")
}

func GetAddr() string {
	return getEnv("MUSICTOOLS_ADDR", DefaultAddr)
}

// GetMaxSteps returns 0 when unset or unparsable, which the generator reads
// as its own default.
func GetMaxSteps() int {
	n, err := strconv.Atoi(os.Getenv("MUSICTOOLS_MAX_STEPS"))
	if err != nil {
		return 0
	}
	return n
}

// GetDynamoEndpoint is empty unless a local DynamoDB is configured.
func GetDynamoEndpoint() string {
	return os.Getenv("MUSICTOOLS_DYNAMO_ENDPOINT")
}

func GetDynamoRegion() string {
	return getEnv("MUSICTOOLS_DYNAMO_REGION", DefaultRegion)
}

func GetPresetTable() string {
	return getEnv("MUSICTOOLS_PRESET_TABLE", DefaultPresetTable)
}
