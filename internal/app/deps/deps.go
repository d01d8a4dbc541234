package deps

import (
	"context"
	"oroshine/internal/config"
	dl "oroshine/internal/core/domain/logging"
	"oroshine/internal/core/domain/notification"
	dout "oroshine/internal/core/domain/outbox"
	drl "oroshine/internal/core/domain/rate_limiter"
	duow "oroshine/internal/core/domain/unit_of_work"
	"oroshine/internal/core/domain/user"
	uow "oroshine/internal/db/unit_of_work"
	deliveryguard "oroshine/internal/implementations/delivery_guard"
	"oroshine/internal/implementations/email"
	"oroshine/internal/implementations/logging"
	passwordhasher "oroshine/internal/implementations/password_hasher"
	passwordresetter "oroshine/internal/implementations/password_resetter"
	ratelimiter "oroshine/internal/implementations/rate_limiter"
	securitystamp "oroshine/internal/implementations/security_stamp"
	"oroshine/internal/outbox"
	"oroshine/internal/rabbitmq"
	notificationintake "oroshine/internal/rabbitmq/publishers/notification_intake"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork duow.UnitOfWork

	RateLimiter drl.RateLimiter

	EmailSender   *email.SESSender
	DeliveryGuard notification.DeliveryGuard

	PasswordHasher         user.PasswordHasher
	PasswordResetter       user.PasswordResetter
	SecurityStampGenerator user.SecurityStampGenerator

	// ChannelIntake is set only when RabbitMQ is not configured; the HTTP
	// binary then runs the dispatch worker pool in-process and drains it
	// on shutdown.
	ChannelIntake      *outbox.ChannelIntake
	NotificationIntake dout.Intake
	Enqueuer           dout.Enqueuer
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.EmailSender = email.NewSESSender(
		deps.AwsConfig,
		deps.Config.AwsEmailSender,
		deps.Config.AwsEmailResetRequestedTemplate,
		deps.Config.AwsEmailResetSucceededTemplate,
		deps.Config.PasswordResetBaseURL,
	)
	deps.DeliveryGuard = deliveryguard.NewRedis(deps.Redis, deps.Logger, deps.Config.DeliveryGuardTTL)

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.PasswordResetter = passwordresetter.NewHMAC(
		deps.Config.Secret,
		deps.Config.PasswordResetWindow,
		deps.Now,
	)
	deps.SecurityStampGenerator = securitystamp.NewUUID()

	closeIntake := deps.initNotificationIntake()
	deps.Enqueuer = outbox.New(deps.Logger, deps.NotificationIntake, deps.Config.IntakeSubmitTimeout)

	return deps, func() {
		closeFuncs := []func(){
			closeIntake,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

// initNotificationIntake picks where committed jobs go: the durable RabbitMQ
// queue when a broker is configured, otherwise an in-process channel drained
// by the embedded worker pool.
func (deps *Deps) initNotificationIntake() func() {
	if deps.Config.RabbitmqURL == "" {
		intake := outbox.NewChannelIntake(deps.Config.IntakeBufferSize)
		deps.ChannelIntake = intake
		deps.NotificationIntake = intake
		deps.Logger.Info(context.Background(), "Notification intake is in-process.")
		// The HTTP binary closes the intake itself, after the worker pool
		// has drained it.
		return func() {}
	}

	closeRabbitmqConn := deps.initRabbitmqConnection()

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}
	queue := deps.Config.RabbitmqNotificationQueue
	if _, err := rabbitmqChannel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	deps.NotificationIntake = notificationintake.New(deps.Logger, rabbitmqChannel, "", queue)
	deps.Logger.Info(context.Background(), "Notification intake is RabbitMQ.", dl.Entry("queue", queue))

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notification intake.")
		rabbitmqChannel.Close()
		closeRabbitmqConn()
		deps.Logger.Info(context.Background(), "Notification intake shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}
