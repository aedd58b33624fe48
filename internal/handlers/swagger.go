package handlers

// @title Analyze Relay API
// @version 1.0
// @description Relays analyze requests to a generative-language model and normalizes the answer

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api

// @tag.name analyze
// @tag.description Generative model relay
