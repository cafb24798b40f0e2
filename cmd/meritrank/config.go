package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vertex-lab/meritrank/pkg/logger"
	"github.com/vertex-lab/meritrank/pkg/models"
	"github.com/vertex-lab/meritrank/pkg/names"
)

// The configuration parameters of the meritrank binary.
type Config struct {
	Log       *logger.Aggregate
	LogWriter io.Writer

	RedisAddress string
	Ego          models.NodeID
	Iterations   int
	Limit        int
	ChartFile    string // empty means no chart
}

// NewConfig returns a config with default parameters.
func NewConfig() *Config {
	return &Config{
		LogWriter:    os.Stdout,
		RedisAddress: "localhost:6379",
		Ego:          models.Absent, // must be specified in the environment
		Iterations:   1000,
		Limit:        -1,
	}
}

func (c *Config) Print() {
	fmt.Println("Config:")
	fmt.Printf("  RedisAddress: %v\n", c.RedisAddress)
	fmt.Printf("  Ego: %d\n", c.Ego)
	fmt.Printf("  Iterations: %d\n", c.Iterations)
	fmt.Printf("  Limit: %d\n", c.Limit)
	fmt.Printf("  ChartFile: %v\n", c.ChartFile)
}

// LoadConfig reads the variables from the .env file and the environment,
// and parses them into a config struct.
func LoadConfig() (*Config, error) {
	godotenv.Load()

	var config = NewConfig()
	var err error

	for _, item := range os.Environ() {
		keyVal := strings.SplitN(item, "=", 2)
		key, val := keyVal[0], keyVal[1]

		switch key {
		case "LOGS":
			// LogWriter gets updated if a .log file is specified; otherwise it remains os.Stdout
			if strings.HasSuffix(val, ".log") {
				config.LogWriter, err = os.OpenFile(val, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
				if err != nil {
					return nil, fmt.Errorf("error opening file \"%v\": %v", val, err)
				}
			}

		case "REDIS_ADDRESS":
			config.RedisAddress = val

		case "EGO":
			config.Ego, err = names.ParseNodeID(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "ITERATIONS":
			config.Iterations, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "LIMIT":
			config.Limit, err = strconv.Atoi(val)
			if err != nil {
				return nil, fmt.Errorf("error parsing %v: %v", keyVal, err)
			}

		case "CHART_FILE":
			config.ChartFile = val
		}
	}

	if !config.Ego.IsPresent() {
		return nil, fmt.Errorf("EGO must be set to the NodeID of the ego")
	}

	config.Log = logger.New(config.LogWriter)
	return config, nil
}

// CloseLogs closes the config.LogWriter if that is a file.
func (c *Config) CloseLogs() {
	if file, ok := c.LogWriter.(*os.File); ok && file != os.Stdout {
		file.Close()
	}
}
