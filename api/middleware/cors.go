package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

var defaultCORSOrigins = []string{
	"http://localhost:5173",         // local dev (vite)
	"https://tweenmart.com.bd",      // storefront
	"https://www.tweenmart.com.bd",  // storefront www
	"https://tween-mart.vercel.app", // Vercel deployment URL
}

// CORS returns middleware that applies the storefront's allowed origin policy.
func CORS() func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   defaultCORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Idempotency-Key", "X-Session-Id", "X-Requested-With"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler
}
