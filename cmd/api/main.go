package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/frtsoysal/newsapi/internal/handler"
	"github.com/frtsoysal/newsapi/internal/matching"
	"github.com/frtsoysal/newsapi/pkg/llm"
	"github.com/frtsoysal/newsapi/pkg/news"
	"github.com/frtsoysal/newsapi/pkg/polymarket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	newsAPIKey := os.Getenv("NEWSAPI_KEY")
	if newsAPIKey == "" {
		log.Fatalf("NEWSAPI_KEY is required")
	}

	newsClient := news.NewNewsAPIClient(newsAPIKey)
	marketClient := polymarket.NewClient()
	matcher := matching.NewMatcher(newsClient)

	var summarizer llm.Summarizer
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		summarizer = llm.NewOpenAIClient(key)
	} else if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		summarizer = llm.NewAnthropicClient(key)
	} else {
		slog.Info("no LLM API key configured, using fallback summaries")
	}

	eventHandler := handler.NewEventHandler(marketClient, matcher, newsClient, summarizer)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	v1 := r.Group("/api/v1")
	v1.GET("/health", eventHandler.GetHealth)
	v1.GET("/events", eventHandler.GetEvents)
	v1.GET("/events/:slug", eventHandler.GetEvent)
	v1.GET("/events/:slug/news", eventHandler.GetEventNews)
	v1.GET("/search", eventHandler.SearchEvents)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	err := r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
