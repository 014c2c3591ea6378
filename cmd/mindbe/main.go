// filepath: cmd/mindbe/main.go
package main

import (
	"github.com/Gary0302/Mind-BE/internal/cli"

	// Import docs for Swagger
	_ "github.com/Gary0302/Mind-BE/docs"
)

// @title Mind-BE API
// @version 0.3.0
// @description Journal-entry reflection backend with a staged Gemini pipeline.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	// Delegate all execution to the CLI package
	cli.Execute()
}
