package main

// General API documentation for swaggo. Regenerate with:
//
//	swag init -g cmd/modelrouter/docs.go -o internal/httpapi/docs
//
// @title           modelrouter API
// @version         1.0
// @description     Health-aware routing of chat requests across local LM Studio and Ollama backends.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
