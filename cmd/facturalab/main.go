package main

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	addressApp "github.com/davicafu/facturalab/internal/address/application"
	addressRepo "github.com/davicafu/facturalab/internal/address/infra/outbound/db/mongodb"
	config "github.com/davicafu/facturalab/internal/config"
	invoiceApp "github.com/davicafu/facturalab/internal/invoice/application"
	invoiceDomain "github.com/davicafu/facturalab/internal/invoice/domain"
	invoiceHttp "github.com/davicafu/facturalab/internal/invoice/infra/inbound/http"
	invoiceAnalytics "github.com/davicafu/facturalab/internal/invoice/infra/outbound/analytics/clickhouse"
	invoiceCache "github.com/davicafu/facturalab/internal/invoice/infra/outbound/cache"
	invoiceMongo "github.com/davicafu/facturalab/internal/invoice/infra/outbound/db/mongodb"
	invoicePostgres "github.com/davicafu/facturalab/internal/invoice/infra/outbound/db/postgre"
	invoiceSQLite "github.com/davicafu/facturalab/internal/invoice/infra/outbound/db/sqlite"
	sharedEvents "github.com/davicafu/facturalab/internal/shared/events"
	infraEvents "github.com/davicafu/facturalab/internal/shared/infra/events"
	sharedBus "github.com/davicafu/facturalab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/facturalab/internal/shared/infra/platform/cache"
	userApp "github.com/davicafu/facturalab/internal/user/application"
	userRepo "github.com/davicafu/facturalab/internal/user/infra/outbound/db/mongodb"
	"github.com/davicafu/facturalab/pkg/logger"
	"github.com/davicafu/facturalab/pkg/metrics"
)

// ---------------- Main ----------------
func main() {
	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- MongoDB ----------------
	clientOpts := options.Client().ApplyURI(cfg.MongoURI).SetAppName("facturalab")
	mongoClient, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoClient.Disconnect(ctx)

	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatal("failed to ping MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.MongoDB)

	userRepoMongo := userRepo.NewUserRepoMongoDB(db)
	vendorRepoMongo := addressRepo.NewVendorAddressRepoMongoDB(db)

	// ------------- Backend de facturas -------------
	var invoiceRepository invoiceDomain.InvoiceRepository
	switch cfg.StorageBackend {
	case "postgres":
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open Postgres pool", zap.Error(err))
		}
		defer pool.Close()
		if err := invoicePostgres.InitPostgres(ctx, pool); err != nil {
			log.Fatal("failed to initialize Postgres", zap.Error(err))
		}
		invoiceRepository = invoicePostgres.NewInvoiceRepoPostgres(pool)

	case "sqlite":
		sqliteDB, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			log.Fatal("failed to open SQLite", zap.Error(err))
		}
		defer sqliteDB.Close()
		if err := invoiceSQLite.InitSQLite(sqliteDB); err != nil {
			log.Fatal("failed to initialize SQLite", zap.Error(err))
		}
		invoiceRepository = invoiceSQLite.NewInvoiceRepoSQLite(sqliteDB)

	default:
		repo, err := invoiceMongo.NewInvoiceRepoMongoDB(ctx, db)
		if err != nil {
			log.Fatal("failed to initialize invoice collection", zap.Error(err))
		}
		invoiceRepository = repo
	}

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = invoiceCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = invoiceCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Analítica ----------------
	var analytics invoiceDomain.AnalyticsRecorder
	if cfg.ClickHouseAddr != "" {
		chRepo, err := invoiceAnalytics.NewInvoiceAnalyticsRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, analítica deshabilitada", zap.Error(err))
		} else {
			if err := chRepo.InitSchema(); err != nil {
				log.Warn("failed to initialize ClickHouse schema", zap.Error(err))
			}
			analytics = chRepo
		}
	}

	// ---------------- Events ----------------
	var publisher sharedBus.Publisher
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos salientes")
		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   sharedEvents.TopicInvoiceCreated,
		})
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)
	} else {
		publisher = infraEvents.NewDaprPublisher(cfg.DaprPublishURL, log)
	}

	// --------------- Servicios --------------
	userService := userApp.NewUserService(userRepoMongo, log)
	vendorService := addressApp.NewVendorAddressService(vendorRepoMongo, log)
	invoiceService := invoiceApp.NewInvoiceService(
		invoiceRepository, userRepoMongo, vendorRepoMongo,
		publisher, analytics, cacheInstance, log,
	)

	// ---------------- HTTP ----------------
	eventHandler := invoiceHttp.NewEventHandler(invoiceService, userService, vendorService, cfg.PubsubName, log)
	queryHandler := invoiceHttp.NewQueryHandler(invoiceService)

	router := gin.Default()
	invoiceHttp.RegisterEventRoutes(router, eventHandler)
	invoiceHttp.RegisterQueryRoutes(router, queryHandler)
	metrics.Register(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
