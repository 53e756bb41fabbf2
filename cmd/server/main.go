package main

import (
	"os"

	"chatstarter/internal/app"
)

// @title           Chat Starter API
// @version         1.0
// @description     Backend API for the chat SaaS starter: authentication plus AI-assisted conversations.
// @BasePath        /api

// @securityDefinitions.basic  BasicAuth

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	os.Exit(app.Run())
}
