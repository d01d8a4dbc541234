package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool `env:"TEST_MODE"`

	Secret        string `env:"SECRET,required"`
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RedisURL      string `env:"REDIS_URL,required"`

	// RabbitmqURL switches the intake to the broker: when set, committed jobs
	// are published to RabbitMQ and delivered by the worker binary instead of
	// the embedded pool.
	RabbitmqURL               string `env:"RABBITMQ_URL"`
	RabbitmqNotificationQueue string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"pending-notification"`

	HTTPAddress string `env:"HTTP_ADDRESS" envDefault:":8080"`

	BcryptHasherCost    int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetWindow time.Duration `env:"PASSWORD_RESET_WINDOW" envDefault:"24h"`

	DispatchWorkerCount    int           `env:"DISPATCH_WORKER_COUNT" envDefault:"4"`
	DispatchMaxAttempts    int           `env:"DISPATCH_MAX_ATTEMPTS" envDefault:"5"`
	DispatchBackoffBase    time.Duration `env:"DISPATCH_BACKOFF_BASE" envDefault:"1s"`
	DispatchAttemptTimeout time.Duration `env:"DISPATCH_ATTEMPT_TIMEOUT" envDefault:"10s"`
	DeliveryGuardTTL       time.Duration `env:"DELIVERY_GUARD_TTL" envDefault:"24h"`
	IntakeBufferSize       int           `env:"INTAKE_BUFFER_SIZE" envDefault:"64"`
	IntakeSubmitTimeout    time.Duration `env:"INTAKE_SUBMIT_TIMEOUT" envDefault:"5s"`

	AwsRegion    string `env:"AWS_REGION,required"`
	AwsAccessKey string `env:"AWS_ACCESS_KEY,required"`
	AwsSecretKey string `env:"AWS_SECRET_KEY,required"`

	AwsEmailSender                 string  `env:"AWS_EMAIL_SENDER,required"`
	AwsEmailResetRequestedTemplate string  `env:"AWS_EMAIL_RESET_REQUESTED_TEMPLATE" envDefault:"password-reset-requested"`
	AwsEmailResetSucceededTemplate string  `env:"AWS_EMAIL_RESET_SUCCEEDED_TEMPLATE" envDefault:"password-reset-succeeded"`
	PasswordResetBaseURL           url.URL `env:"PASSWORD_RESET_BASE_URL,required"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
