package config

import (
	"os"
	"strconv"
)

type envConfig struct {
	LogLevel            string
	ServerPort          int
	Version             string
	HrisEndpoint        string
	SessionFileLocation string
	ArtifactDir         string
	TmpDir              string
	EmailTo             string
	EmailFrom           string
	EmailRegion         string
	SyncPolicy          string
}

func NewEnvironmentConfig() *envConfig {
	return &envConfig{
		LogLevel:            getEnvString("LOG_LEVEL", "INFO"),
		ServerPort:          getEnvInt("SERVER_PORT", 0),
		Version:             getEnvString("VERSION", ""),
		HrisEndpoint:        getEnvString("HRIS_ENDPOINT", ""),
		SessionFileLocation: getEnvString("SESSION_FILE_LOCATION", "/tmp/payroll-console-session.json"),
		ArtifactDir:         getEnvString("ARTIFACT_DIR", "/tmp/payroll-console"),
		TmpDir:              getEnvString("TMP_DIR", "/tmp"),
		EmailTo:             getEnvString("EMAIL_TO", ""),
		EmailFrom:           getEnvString("EMAIL_FROM", ""),
		EmailRegion:         getEnvString("EMAIL_REGION", "ap-southeast-2"),
		SyncPolicy:          getEnvString("SYNC_POLICY", "best-effort"),
	}
}

// helper function to read an environment or return a default value
func getEnvString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

// helper function to read an environment or return a default value
func getEnvInt(key string, defaultVal int) int {
	val, err := strconv.Atoi(getEnvString(key, strconv.Itoa(defaultVal)))
	if err == nil {
		return val
	}

	return defaultVal
}
