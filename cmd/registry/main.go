// Package main provides the Pharos register HTTP API service: accepts
// paginated register data, validates and merges it, and serves release
// reports and project/dataset/user metadata.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/pharos-project/register/internal/aliasing"
	"github.com/pharos-project/register/internal/api"
	"github.com/pharos-project/register/internal/storage"
	"github.com/pharos-project/register/internal/sync"
)

// Version information.
const (
	version = "1.0.0-dev"
	name    = "register"
)

func main() {
	versionFlag := flag.Bool("version", false, "show version information")
	flag.Parse()

	if *versionFlag {
		log.Printf("%s v%s\n", name, version)
		os.Exit(0)
	}

	serverConfig := api.LoadServerConfig()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: serverConfig.LogLevel,
	}))

	logger.Info("Starting register service",
		slog.String("service", name),
		slog.String("version", version),
	)

	logger.Info("Loaded server configuration",
		slog.String("host", serverConfig.Host),
		slog.Int("port", serverConfig.Port),
		slog.Duration("read_timeout", serverConfig.ReadTimeout),
		slog.Duration("write_timeout", serverConfig.WriteTimeout),
		slog.Duration("shutdown_timeout", serverConfig.ShutdownTimeout),
		slog.String("log_level", serverConfig.LogLevel.String()),
	)

	apiKeyStore, metadataStore, registerStore, err := buildStores(logger)
	if err != nil {
		logger.Error("Failed to initialise storage backends", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resolverConfig, err := aliasing.LoadConfigFromEnv()
	if err != nil {
		logger.Warn("Failed to load column synonym configuration, continuing with built-in names only",
			slog.String("error", err.Error()))

		resolverConfig = nil
	}

	resolver := aliasing.NewResolver(resolverConfig)

	publisher := buildPublisher(logger)

	server := api.NewServer(
		&serverConfig,
		apiKeyStore,
		nil, // rate limiting disabled until REGISTER_RATE_LIMIT wiring lands
		metadataStore,
		registerStore,
		resolver,
		publisher,
	)

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("register service stopped")
}

// buildStores wires the Postgres-backed stores when DATABASE_URL is set,
// falling back to in-memory stores for local development otherwise.
func buildStores(logger *slog.Logger) (storage.APIKeyStore, storage.MetadataStore, storage.RegisterStore, error) {
	dbConfig := storage.LoadConfig()
	if err := dbConfig.Validate(); err != nil {
		logger.Warn("DATABASE_URL not configured, using in-memory storage backends")

		return storage.NewInMemoryKeyStore(),
			storage.NewInMemoryMetadataStore(),
			storage.NewInMemoryRegisterStore(),
			nil
	}

	conn, err := storage.NewConnection(dbConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	apiKeyStore, err := storage.NewPersistentKeyStore(conn)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.Info("Connected to Postgres storage backend",
		slog.String("database_url", dbConfig.MaskDatabaseURL()))

	return apiKeyStore, storage.NewPostgresMetadataStore(conn), storage.NewPostgresRegisterStore(conn), nil
}

// buildPublisher wires a Kafka event publisher when REGISTER_KAFKA_BROKERS
// is set, disabling event publishing otherwise.
func buildPublisher(logger *slog.Logger) *sync.Publisher {
	brokersStr := os.Getenv("REGISTER_KAFKA_BROKERS")
	if brokersStr == "" {
		logger.Warn("REGISTER_KAFKA_BROKERS not set, register events will not be published")

		return nil
	}

	topic := os.Getenv("REGISTER_KAFKA_TOPIC")
	if topic == "" {
		topic = "register-events"
	}

	brokers := strings.Split(brokersStr, ",")

	return sync.NewPublisher(brokers, topic, logger)
}
