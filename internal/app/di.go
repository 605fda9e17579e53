package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/csytan/triplecrownforheart/internal/cache"
	mailgunclient "github.com/csytan/triplecrownforheart/internal/client/http/mailgun"
	ipnclient "github.com/csytan/triplecrownforheart/internal/client/http/paypal/ipn"
	nvpclient "github.com/csytan/triplecrownforheart/internal/client/http/paypal/nvp"
	tgclient "github.com/csytan/triplecrownforheart/internal/client/http/telegram"
	wufooclient "github.com/csytan/triplecrownforheart/internal/client/http/wufoo"
	s3client "github.com/csytan/triplecrownforheart/internal/client/s3"
	"github.com/csytan/triplecrownforheart/internal/config"
	envconfig "github.com/csytan/triplecrownforheart/internal/config/env"
	convkafka "github.com/csytan/triplecrownforheart/internal/converter/kafka"
	"github.com/csytan/triplecrownforheart/internal/identity"
	"github.com/csytan/triplecrownforheart/internal/migrator"
	"github.com/csytan/triplecrownforheart/internal/model"
	filerepo "github.com/csytan/triplecrownforheart/internal/repository/ledger/file"
	pgrepo "github.com/csytan/triplecrownforheart/internal/repository/ledger/postgres"
	"github.com/csytan/triplecrownforheart/internal/repository/lock"
	ipnsvc "github.com/csytan/triplecrownforheart/internal/service/ipn"
	ledgersvc "github.com/csytan/triplecrownforheart/internal/service/ledger"
	"github.com/csytan/triplecrownforheart/internal/service/notification"
	ledgerproducer "github.com/csytan/triplecrownforheart/internal/service/producer/ledger"
	"github.com/csytan/triplecrownforheart/internal/service/publisher"
	"github.com/csytan/triplecrownforheart/internal/service/reconcile"
	ipnv1 "github.com/csytan/triplecrownforheart/internal/transport/http/ipn/v1"
	ledgerv1 "github.com/csytan/triplecrownforheart/internal/transport/http/ledger/v1"
	"github.com/csytan/triplecrownforheart/platform/closer"
	"github.com/csytan/triplecrownforheart/platform/kafka"
	"github.com/csytan/triplecrownforheart/platform/kafka/producer"
	"github.com/csytan/triplecrownforheart/platform/logger"
)

type LedgerService interface {
	reconcile.Ledger
	ledgerv1.LedgerReader
}

type NotificationService interface {
	reconcile.Notifier
	ipnsvc.Notifier
}

type ReconcileService interface {
	Run(ctx context.Context, interval time.Duration) error
	RunOnce(ctx context.Context) (model.CycleReport, error)
}

type RoutesHandler interface {
	Routes(r chi.Router)
}

type di struct {
	httpClient *http.Client
	hasher     *identity.Hasher

	dbPool      *pgxpool.Pool
	migrator    *migrator.Migrator
	ledgerStore ledgersvc.Store
	ledgerLock  ledgersvc.WriteLock
	ledger      LedgerService

	redisClient redis.UniversalClient
	jobLock     reconcile.JobLock

	syncProducer           sarama.SyncProducer
	ledgerRecordedProducer kafka.Producer

	tgBot        *bot.Bot
	notification NotificationService

	ipnService       ipnv1.IPNService
	reconcileService ReconcileService

	ipnHandler    RoutesHandler
	ledgerHandler RoutesHandler
	router        *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) HTTPClient(_ context.Context) *http.Client {
	if d.httpClient == nil {
		d.httpClient = &http.Client{}
	}

	return d.httpClient
}

func (d *di) Hasher(_ context.Context) *identity.Hasher {
	if d.hasher == nil {
		d.hasher = identity.NewHasher(config.C().Identity.Salt())
	}

	return d.hasher
}

func (d *di) DBPool(ctx context.Context) *pgxpool.Pool {
	if d.dbPool == nil {
		pool, err := pgxpool.New(ctx, config.C().Postgres.DSN())
		if err != nil {
			panic(fmt.Sprintf("failed to create pg pool: %s\n", err.Error()))
		}
		if err := pool.Ping(ctx); err != nil {
			panic(fmt.Sprintf("failed to ping db: %s\n", err.Error()))
		}
		closer.AddNamed("Postgres pool", func(ctx context.Context) error {
			pool.Close()
			return nil
		})

		d.dbPool = pool
	}

	return d.dbPool
}

func (d *di) Migrator(ctx context.Context) *migrator.Migrator {
	if d.migrator == nil {
		m := migrator.NewMigrator(
			stdlib.OpenDBFromPool(d.DBPool(ctx)),
			config.C().Postgres.MigrationDirectory(),
		)
		closer.AddNamed("Migrator", func(ctx context.Context) error {
			return m.Close()
		})

		d.migrator = m
	}

	return d.migrator
}

func (d *di) LedgerStore(ctx context.Context) ledgersvc.Store {
	if d.ledgerStore == nil {
		switch config.C().Ledger.Backend() {
		case envconfig.BackendPostgres:
			d.ledgerStore = pgrepo.NewLedgerRepository(d.DBPool(ctx))
		default:
			d.ledgerStore = filerepo.NewLedgerRepository(config.C().Ledger.Path())
		}
	}

	return d.ledgerStore
}

// LedgerLock serialises commits of every process sharing the ledger store.
func (d *di) LedgerLock(ctx context.Context) ledgersvc.WriteLock {
	if d.ledgerLock == nil {
		switch config.C().Ledger.Backend() {
		case envconfig.BackendPostgres:
			d.ledgerLock = lock.NewAdvisoryLock(d.DBPool(ctx), lock.LedgerAdvisoryKey)
		default:
			d.ledgerLock = lock.NewFileLock(config.C().Ledger.Path() + ".lock")
		}
	}

	return d.ledgerLock
}

func (d *di) LedgerObservers(ctx context.Context) []ledgersvc.Observer {
	cfg := config.C()

	var observers []ledgersvc.Observer
	if cfg.Publisher.Enabled() {
		observers = append(observers, publisher.NewPublisherService(d.S3Publisher(ctx)))
	}
	if cfg.Kafka.Enabled() {
		observers = append(observers, ledgerproducer.NewLedgerProducer(
			d.LedgerRecordedProducer(ctx),
			convkafka.NewKafkaConverter(),
		))
	}

	return observers
}

func (d *di) Ledger(ctx context.Context) LedgerService {
	if d.ledger == nil {
		l, err := ledgersvc.NewLedgerService(
			ctx,
			d.LedgerStore(ctx),
			d.LedgerLock(ctx),
			config.C().Ledger.WriteTimeout(),
			d.LedgerObservers(ctx)...,
		)
		if err != nil {
			panic(fmt.Sprintf("failed to load ledger: %s\n", err.Error()))
		}

		d.ledger = l
	}

	return d.ledger
}

func (d *di) S3Publisher(ctx context.Context) publisher.Publisher {
	cfg := config.C().Publisher

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region()))
	if err != nil {
		panic(fmt.Sprintf("failed to load aws config: %s\n", err.Error()))
	}

	return s3client.NewPublisher(s3.NewFromConfig(awsCfg), cfg.Bucket(), cfg.Prefix())
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.LedgerRecordedProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) LedgerRecordedProducer(ctx context.Context) kafka.Producer {
	if d.ledgerRecordedProducer == nil {
		d.ledgerRecordedProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.LedgerRecordedTopic(),
			logger.L(),
		)
	}

	return d.ledgerRecordedProducer
}

func (d *di) RedisClient(ctx context.Context) redis.UniversalClient {
	if d.redisClient == nil {
		cfg := config.C().Redis

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			panic(fmt.Sprintf("failed to ping redis: %s\n", err.Error()))
		}
		closer.AddNamed("Redis client", func(ctx context.Context) error {
			return client.Close()
		})

		d.redisClient = client
	}

	return d.redisClient
}

func (d *di) JobLock(ctx context.Context) reconcile.JobLock {
	if d.jobLock == nil {
		cfg := config.C().Lock

		switch cfg.Backend() {
		case envconfig.BackendRedis:
			d.jobLock = lock.NewRedisLock(d.RedisClient(ctx), cfg.Key(), cfg.TTL())
		default:
			d.jobLock = lock.NewFileLock(cfg.Path())
		}
	}

	return d.jobLock
}

func (d *di) TelegramBot(_ context.Context) *bot.Bot {
	if d.tgBot == nil {
		b, err := bot.New(config.C().Telegram.BotToken(), bot.WithSkipGetMe())
		if err != nil {
			panic(fmt.Sprintf("failed to create telegram bot: %s\n", err.Error()))
		}
		closer.AddNamed("Telegram Bot", func(ctx context.Context) error {
			_, err := b.Close(ctx)
			return err
		})

		d.tgBot = b
	}

	return d.tgBot
}

func (d *di) Notification(ctx context.Context) NotificationService {
	if d.notification == nil {
		cfg := config.C()

		mailer := mailgunclient.NewClient(
			d.HTTPClient(ctx),
			cfg.Mailgun.BaseURL(),
			cfg.Mailgun.Domain(),
			cfg.Mailgun.APIKey(),
			cfg.Mailgun.From(),
			cfg.Mailgun.Timeout(),
		)

		var alerter notification.Alerter
		if cfg.Telegram.Enabled() {
			alerter = tgclient.NewClient(d.TelegramBot(ctx), cfg.Telegram.ChatID())
		}

		svc, err := notification.NewNotificationService(
			mailer,
			alerter,
			cfg.Business.DonationPageURL(),
			cfg.Business.AdminEmail(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create notification service: %s\n", err.Error()))
		}

		d.notification = svc
	}

	return d.notification
}

func (d *di) IPNService(ctx context.Context) ipnv1.IPNService {
	if d.ipnService == nil {
		cfg := config.C()

		d.ipnService = ipnsvc.NewIPNService(
			ipnclient.NewVerifier(d.HTTPClient(ctx), cfg.PayPal.IPNURL(), cfg.PayPal.IPNTimeout()),
			d.Ledger(ctx),
			d.Notification(ctx),
			d.Hasher(ctx),
			ipnsvc.Rules{
				Currency: cfg.Business.Currency(),
				Merchant: cfg.Business.MerchantIdentity(),
				Fees:     cfg.Fees,
			},
		)
	}

	return d.ipnService
}

func (d *di) ReconcileService(ctx context.Context) ReconcileService {
	if d.reconcileService == nil {
		cfg := config.C()

		registrations := wufooclient.NewClient(
			d.HTTPClient(ctx),
			cfg.Wufoo.BaseURL(),
			cfg.Wufoo.FormID(),
			cfg.Wufoo.APIKey(),
			wufooclient.Fields{
				FirstName: cfg.Wufoo.FirstNameField(),
				LastName:  cfg.Wufoo.LastNameField(),
				Email:     cfg.Wufoo.EmailField(),
			},
			cfg.Wufoo.Timeout(),
		)

		transactions := nvpclient.NewClient(
			d.HTTPClient(ctx),
			cfg.PayPal.NVPURL(),
			nvpclient.Credentials{
				User:      cfg.PayPal.APIUser(),
				Password:  cfg.PayPal.APIPassword(),
				Signature: cfg.PayPal.APISignature(),
			},
			cfg.PayPal.NVPTimeout(),
		)

		d.reconcileService = reconcile.NewReconcileService(
			registrations,
			transactions,
			d.JobLock(ctx),
			d.Ledger(ctx),
			d.Notification(ctx),
			d.Hasher(ctx),
			reconcile.Rules{
				Currency: cfg.Business.Currency(),
				Merchant: cfg.Business.MerchantIdentity(),
				Since:    cfg.Reconcile.Since(),
			},
		)
	}

	return d.reconcileService
}

func (d *di) IPNHandler(ctx context.Context) RoutesHandler {
	if d.ipnHandler == nil {
		d.ipnHandler = ipnv1.NewIPNHandler(d.IPNService(ctx))
	}

	return d.ipnHandler
}

func (d *di) LedgerHandler(ctx context.Context) RoutesHandler {
	if d.ledgerHandler == nil {
		d.ledgerHandler = ledgerv1.NewLedgerHandler(
			d.Ledger(ctx),
			cache.NewTTL[[]byte](config.C().Ledger.CacheTTL()),
		)
	}

	return d.ledgerHandler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
