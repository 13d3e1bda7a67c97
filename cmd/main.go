package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"

	"maitred/internal/api"
	"maitred/internal/assistant"
	"maitred/internal/confidence"
	"maitred/internal/database"
	"maitred/internal/engine"
	"maitred/internal/monitoring"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Load configuration
	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Open(config.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if config.SeedDemo {
		if err := database.SeedDemo(db); err != nil {
			log.Fatalf("Failed to seed demo data: %v", err)
		}
	}
	store := database.NewStore(db)

	// Initialize accuracy history store
	history := initializeHistory(config)

	// Initialize metrics collector
	collector := monitoring.NewMetricsCollector()
	monitor := monitoring.NewMonitor()

	// Initialize the resolution engine
	eng := engine.New(history, collector)

	// Initialize the conversational responder
	responder := initializeResponder(config)

	// Initialize API server
	chatAPI := api.NewChatAPI(eng, store, responder, monitor, config.JWTSecret)

	// Start metrics server
	if config.MetricsConfig.Enabled {
		go startMetricsServer(*metricsPort, collector)
	}

	// Start API server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: chatAPI.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAIKey = key
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		config.DatabaseURL = url
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.JWTSecret = secret
	}

	return &config, nil
}

func initializeHistory(config *Config) confidence.HistoryStore {
	if config.RedisConfig.Addr == "" {
		return confidence.NewMemoryHistoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisConfig.Addr,
		Password: config.RedisConfig.Password,
		DB:       config.RedisConfig.DB,
	})
	ttl := time.Duration(config.RedisConfig.TTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	log.Printf("Using Redis accuracy history at %s", config.RedisConfig.Addr)
	return confidence.NewRedisHistoryStore(client, ttl)
}

func initializeResponder(config *Config) assistant.Responder {
	if config.OpenAIKey == "" {
		log.Println("No OpenAI key configured, using static responder")
		return assistant.StaticResponder{}
	}

	responder, err := assistant.NewLLMResponder(config.OpenAIKey, config.Model)
	if err != nil {
		log.Printf("Failed to initialize LLM responder, falling back to static: %v", err)
		return assistant.StaticResponder{}
	}
	return responder
}

func startMetricsServer(port int, collector *monitoring.MetricsCollector) {
	metricsRouter := gin.Default()
	metricsRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{})))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}

// Config represents the application configuration
type Config struct {
	OpenAIKey     string `yaml:"openai_key"`
	Model         string `yaml:"model"`
	DatabaseURL   string `yaml:"database_url"`
	JWTSecret     string `yaml:"jwt_secret"`
	LogLevel      string `yaml:"log_level"`
	SeedDemo      bool   `yaml:"seed_demo"`
	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	RedisConfig struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"redis"`
}
