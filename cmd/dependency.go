package cmd

import (
	"concert-ticket-pipeline/common/otel"
	"context"
	"fmt"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"log"
	"log/slog"
	"os"
	"runtime/pprof"
	"strings"
	"time"
)

func newCfg(name string) *viper.Viper {
	config := viper.New()

	config.SetConfigName(name)
	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	setDefaults(config)

	err := config.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalln(err)
		}
	}

	if timezone := config.GetString("server.timezone"); timezone != "" {
		err = os.Setenv("TZ", timezone)
		if err != nil {
			log.Fatalln(err)
		}
	}

	return config
}

func setDefaults(config *viper.Viper) {
	config.SetDefault("log.level", int(slog.LevelInfo))
	config.SetDefault("server.port", 8080)
	config.SetDefault("server.timezone", "UTC")
	config.SetDefault("http.timeout", 20*time.Second)

	config.SetDefault("db.port", 5432)
	config.SetDefault("db.pool.max", 10)
	config.SetDefault("db.pool.min", 1)

	config.SetDefault("otel.enabled", false)
	config.SetDefault("otel.service_name", "concert-ticket-pipeline")
	config.SetDefault("otel.sample_ratio", 1.0)

	for _, queue := range []string{queuePayment, queueSeatInventory, queueFanReward, queueNotification, queueNotificationLog} {
		config.SetDefault(queueKey(queue, "max_deliver"), 5)
		config.SetDefault(queueKey(queue, "ack_wait"), 30*time.Second)
		config.SetDefault(queueKey(queue, "batch_size"), 10)
		config.SetDefault(queueKey(queue, "batch_wait"), 5*time.Second)
		config.SetDefault(queueKey(queue, "timeout"), 10*time.Second)
		config.SetDefault(queueKey(queue, "concurrency"), 10)
	}
}

// mustGetString reads a key that has no default. Startup stops when it is unset.
func mustGetString(cfg *viper.Viper, key string) string {
	value := cfg.GetString(key)
	if value == "" {
		log.Fatalf("missing required config %q (env %s)", key, envName(key))
	}

	return value
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func dbConnString(cfg *viper.Viper) string {
	username := mustGetString(cfg, "db.user")
	password := cfg.GetString("db.password")
	host := mustGetString(cfg, "db.host")
	port := cfg.GetInt("db.port")
	database := mustGetString(cfg, "db.name")
	timezone := cfg.GetString("server.timezone")

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?timezone=%s",
		username, password, host, port, database, timezone)
}

func newDb(cfg *viper.Viper) *pgxpool.Pool {
	maxConn := cfg.GetInt("db.pool.max")
	minConn := cfg.GetInt("db.pool.min")

	config, err := pgxpool.ParseConfig(dbConnString(cfg))
	if err != nil {
		log.Fatalln(err)
	}

	config.MaxConns = int32(maxConn)
	config.MinConns = int32(minConn)
	config.ConnConfig.Tracer = &otel.PgxCustomTracer{}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatalln(err)
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatalln(err)
	}

	return pool
}

func newRedis(cfg *viper.Viper) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     mustGetString(cfg, "redis.addr"),
		Password: cfg.GetString("redis.password"),
		DB:       cfg.GetInt("redis.db"),
	})

	err := rdb.Ping(context.Background()).Err()
	if err != nil {
		log.Fatalln(err)
	}

	return rdb
}

func newNats(cfg *viper.Viper) *nats.Conn {
	conn, err := nats.Connect(mustGetString(cfg, "nats.addr"), nats.Name(cfg.GetString("otel.service_name")))
	if err != nil {
		log.Fatalln(err)
	}

	return conn
}

func newJs(conn *nats.Conn) jetstream.JetStream {
	js, err := jetstream.New(conn)
	if err != nil {
		log.Fatalln(err)
	}

	return js
}

// newTracerProvider returns a func that flushes pending spans.
func newTracerProvider(ctx context.Context, cfg *viper.Viper) func() {
	shutdown, err := otel.InitTracerProvider(ctx, otel.Config{
		Enabled:     cfg.GetBool("otel.enabled"),
		Endpoint:    cfg.GetString("otel.endpoint"),
		ServiceName: cfg.GetString("otel.service_name"),
		SampleRatio: cfg.GetFloat64("otel.sample_ratio"),
	})
	if err != nil {
		log.Fatalln("unable to init tracer provider", err)
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := shutdown(ctx); err != nil {
			slog.Error("unable to shutdown tracer provider", slog.Any("err", err))
		}
	}
}

// startProfiling writes CPU and heap profiles under prefix when env is dev.
func startProfiling(cfg *viper.Viper, prefix string) func() {
	if cfg.GetString("env") != "dev" {
		return func() {}
	}

	cpu, err := os.Create(prefix + "-cpu.prof")
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	err = pprof.StartCPUProfile(cpu)
	if err != nil {
		slog.Warn("could not start CPU profile", slog.String("prefix", prefix), slog.Any("err", err))
		cpu.Close()
		return func() {}
	}

	return func() {
		pprof.StopCPUProfile()
		cpu.Close()

		mem, err := os.Create(prefix + "-mem.prof")
		if err != nil {
			slog.Error("could not create memory profile", slog.Any("err", err))
			return
		}
		defer mem.Close()

		if err := pprof.WriteHeapProfile(mem); err != nil {
			slog.Error("could not write memory profile", slog.Any("err", err))
		}
	}
}
