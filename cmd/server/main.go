package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/gemini-rag/backend/internal/api"
	"github.com/gemini-rag/backend/internal/config"
	"github.com/gemini-rag/backend/internal/filesearch"
	"github.com/gemini-rag/backend/internal/history"
	"github.com/gemini-rag/backend/internal/query"
	"github.com/gemini-rag/backend/internal/validation"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// .env is optional; a missing file is not an error.
	_ = godotenv.Load()

	configPath := os.Getenv("GEMINI_RAG_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	apiKey := cfg.APIKey()
	if apiKey == "" {
		fmt.Printf("Missing Gemini API key: set %s\n", cfg.Gemini.APIKeyEnv)
		os.Exit(1)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// One HTTP client shares its connection pool across all remote calls.
	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}

	searchClient := filesearch.NewClient(filesearch.Config{
		APIKey:          apiKey,
		BaseURL:         cfg.Gemini.BaseURL,
		UploadBaseURL:   cfg.Gemini.UploadBaseURL,
		HTTPClient:      httpClient,
		PollInterval:    cfg.PollInterval(),
		MaxPollAttempts: cfg.Gemini.MaxPollAttempts,
	})

	validator := validation.NewValidator()
	ingestor := filesearch.NewIngestor(searchClient, validator)

	querier := query.NewService(query.Config{
		APIKey:     apiKey,
		BaseURL:    cfg.Gemini.BaseURL,
		Model:      cfg.Gemini.Model,
		HTTPClient: httpClient,
	})

	historyStore, err := history.NewStore(cfg.HistoryPath())
	if err != nil {
		fmt.Printf("Failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	handlers := api.NewHandlers(&api.Dependencies{
		Search:                searchClient,
		Ingestor:              ingestor,
		Querier:               querier,
		Validator:             validator,
		History:               historyStore,
		Version:               Version,
		AllowStoreDeletion:    cfg.Security.AllowStoreDeletion,
		AllowDocumentDeletion: cfg.Security.AllowDocumentDeletion,
	})

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/api/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	s := &http.Server{
		Addr: cfg.GetServerAddr(),
		// Uploads block on remote indexing for up to five minutes, so the
		// write timeout must exceed the polling ceiling.
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	fmt.Printf("Gemini RAG server %s (built %s)\n", Version, BuildTime)
	fmt.Printf("Config:  %s\n", configPath)
	fmt.Printf("Listen:  http://%s\n", cfg.GetServerAddr())
	fmt.Printf("History: %s\n", cfg.HistoryPath())

	e.Logger.Fatal(e.StartServer(s))
}
