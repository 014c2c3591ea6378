// filepath: internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Gary0302/Mind-BE/internal/api/handlers"
	"github.com/Gary0302/Mind-BE/internal/audit"
	"github.com/Gary0302/Mind-BE/internal/config"
	"github.com/Gary0302/Mind-BE/internal/gemini"
	"github.com/Gary0302/Mind-BE/internal/housekeeping"
	"github.com/Gary0302/Mind-BE/internal/httpserver"
	"github.com/Gary0302/Mind-BE/internal/logging"
	"github.com/Gary0302/Mind-BE/internal/repository"
	"github.com/Gary0302/Mind-BE/internal/services"
	"github.com/Gary0302/Mind-BE/internal/services/auth"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "0.3.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile      string
	port         int
	logLevel     string
	dbPath       string
	geminiAPIKey string
	geminiModel  string
	jwtSecret    string
	auditEnabled bool
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "mindbe",
	Short: "Mind-BE reflection API",
	Long:  `A REST API that analyzes journal entries with a staged Gemini pipeline and stores reflections for registered users.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	// RunE executes the main server logic.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Define flags.
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: MB_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: MB_LOG_LEVEL)")

	// Server-specific flags
	RootCmd.Flags().IntVar(&port, "port", 0, "Port for the HTTP server. (Env: MB_PORT)")
	RootCmd.Flags().StringVar(&dbPath, "db-path", "", "Path to the SQLite database file. (Env: MB_DATABASE_PATH)")
	RootCmd.Flags().StringVar(&geminiAPIKey, "gemini-api-key", "", "API key for the Gemini API. (Env: MB_GEMINI_API_KEY)")
	RootCmd.Flags().StringVar(&geminiModel, "gemini-model", "", "Gemini model name. (Env: MB_GEMINI_MODEL)")
	RootCmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "Secret key for signing JWTs. (Env: MB_JWT_SECRET)")
	RootCmd.Flags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: MB_AUDIT_ENABLED=true)")

	RootCmd.AddCommand(NewMigrateCommand())
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// Load a local .env file if present so MB_* variables work in development.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logging.Log.Warnf("Failed to load .env file: %v", err)
	}

	// 1. Check environment variable for config path first
	if envPath := os.Getenv("MB_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, cmd)

	// 3. Defaults and validation
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	// --- 1. Environment Variables ---
	if v := os.Getenv("MB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("MB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MB_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := os.Getenv("MB_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("MB_GEMINI_API_KEY"); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv("MB_GEMINI_MODEL"); v != "" {
		c.Gemini.Model = v
	}
	if v := os.Getenv("MB_JWT_SECRET"); v != "" {
		c.JWTSecret = v
	}

	// --- 2. CLI Flags (Take precedence) ---
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	// Check if flag was explicitly set
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if geminiAPIKey != "" {
		c.Gemini.APIKey = geminiAPIKey
	}
	if geminiModel != "" {
		c.Gemini.Model = geminiModel
	}
	if jwtSecret != "" {
		c.JWTSecret = jwtSecret
	}
}

// runServer contains the logic to start the HTTP server with graceful shutdown.
func runServer() error {
	// Handle JWT Secret
	if cfg.JWTSecret == "" {
		if cfg.JWT.Secret != "" {
			logging.Log.Info("Using JWT secret loaded from config.toml.")
			cfg.JWTSecret = cfg.JWT.Secret
		} else {
			logging.Log.Info("Generating new random JWT secret...")
			newSecret, err := auth.GenerateSecret()
			if err != nil {
				return fmt.Errorf("failed to generate JWT secret: %w", err)
			}
			cfg.JWT.Secret = newSecret
			cfg.JWTSecret = newSecret
			if err := config.SaveConfig(cfgFile, cfg); err != nil {
				logging.Log.Warnf("Failed to save new JWT secret to %s: %v", cfgFile, err)
			} else {
				logging.Log.Infof("New JWT secret saved to %s.", cfgFile)
			}
		}
	}

	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize repository: %w", err)
	}
	defer repo.Close()

	// --- Conditional Auto-migrate on startup ---
	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return err
	}

	if err := repo.ValidateSchema(); err != nil {
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return err
	}

	// Gemini client (outbound dependency)
	generator, err := gemini.NewClient(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	// Service Initialization
	infoService := services.NewInfoService(Version, StartTime)
	userService := services.NewUserService(repo)
	tokenService := auth.NewTokenService(cfg, userService, repo)
	analysisService := services.NewAnalysisService(generator, repo, cfg)
	entryService := services.NewEntryService(repo, cfg)

	// Auditor Initialization
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	authMiddleware := auth.NewMiddleware(tokenService)

	housekeepingService := housekeeping.NewService(repo)
	housekeepingService.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	h := handlers.NewHandlers(
		infoService,
		userService,
		analysisService,
		entryService,
		tokenService,
		loggerAuditor,
		cfg,
	)

	r := httpserver.SetupRouter(h, authMiddleware)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: r,
	}

	// --- Graceful Shutdown Setup ---
	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Run server in a goroutine
	go func() {
		logging.Log.Infof("Server starting on %s (model: %s)", serverAddr, cfg.Gemini.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Block until a signal is received
	<-stop
	logging.Log.Info("Shutting down server...")

	// Create a deadline for existing requests to complete (30 seconds)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop background services
	housekeepingService.Stop()

	// Shutdown the HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
