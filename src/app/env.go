package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/cardbench/benchconv/src/pkg/utils"
)

type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

type EnvVars struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"prod"`
	Workers     int         `envconfig:"BENCHCONV_WORKERS" default:"8"`
}

// MustLoadEnv reads process configuration from the environment, after
// a best-effort .env load.
func MustLoadEnv() EnvVars {
	_ = godotenv.Load()

	var env EnvVars
	if err := envconfig.Process("", &env); err != nil {
		panic(err)
	}

	return env
}

// NewLogger builds the process logger: human-readable in dev,
// structured JSON otherwise.
func NewLogger(env Environment) *zap.SugaredLogger {
	if env == EnvDev {
		return utils.Must(zap.NewDevelopment()).Sugar()
	}

	return utils.Must(zap.NewProduction()).Sugar()
}
