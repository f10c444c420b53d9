package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobtrack-client-go/internal/api"
	"jobtrack-client-go/internal/checkout"
	"jobtrack-client-go/internal/config"
	"jobtrack-client-go/internal/core"
	"jobtrack-client-go/internal/session"
)

func main() {
	// --- 1. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to load application configuration: %v", err)
	}

	// --- 2. Initialize Logger (Zap) ---
	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.LogMode) == "production" {
		zapLogger, err = zap.NewProduction()
		gin.SetMode(gin.ReleaseMode)
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Session Storage ---
	sessionKey, err := appConfig.SessionKey()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Invalid session encryption key", zap.Error(err))
	}
	sessionStore, err := session.NewFileStore(appConfig.SessionFile, sessionKey)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize session storage", zap.Error(err))
	}

	// --- 4. Initialize API Client ---
	apiClient, err := api.New(api.Config{
		BaseURL: appConfig.APIBaseURL,
		Timeout: time.Duration(appConfig.APITimeoutSeconds) * time.Second,
		Logger:  zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize API client", zap.Error(err))
	}

	// --- 5. Initialize Stores ---
	authStore := core.NewAuthStore(apiClient, sessionStore, zapLogger)
	dataStore := core.NewDataStore(apiClient, authStore, zapLogger)

	// One-shot wiring: a 401 anywhere clears the local session. Performed
	// once here during process initialization, not a general event bus.
	apiClient.OnSessionExpired(authStore.HandleSessionExpired)

	// --- 6. Initialize Checkout Integration ---
	gateway, err := checkout.NewBrowserGateway(checkout.BrowserGatewayConfig{
		CheckoutURL:  appConfig.GatewayCheckoutURL,
		Origin:       appConfig.GatewayOrigin,
		CallbackPort: appConfig.CallbackPort,
		Logger:       zapLogger,
	})
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize checkout gateway", zap.Error(err))
	}
	defer gateway.Close()
	processor := checkout.NewProcessor(gateway, zapLogger)
	_ = processor // handed to the view layer alongside the stores

	// --- 7. Restore a Persisted Session ---
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelBoot()
	if err := authStore.Bootstrap(bootCtx); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Session bootstrap failed", zap.Error(err))
	}

	if user := authStore.CurrentUser(); user != nil {
		zapLogger.Info("Session restored", zap.String("email", user.Email))
		if err := dataStore.LoadDashboardStats(bootCtx); err == nil {
			if stats := dataStore.DashboardStats(); stats != nil {
				fmt.Printf("Signed in as %s — %d applications tracked\n",
					user.Email, totalApplications(stats.StatusCounts))
			}
		}
	} else {
		fmt.Println("No active session. Sign in to start tracking applications.")
	}

	// --- 8. Wait for Shutdown ---
	// The view layer drives the stores from here; this process-level shell
	// only keeps the checkout callback server alive until interrupted.
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))
}

func totalApplications(statusCounts map[string]int) int {
	total := 0
	for _, n := range statusCounts {
		total += n
	}
	return total
}
