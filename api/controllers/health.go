package controllers

import (
	"net/http"

	"github.com/tweenmart/storefront-backend/api/responses"
	"github.com/tweenmart/storefront-backend/pkg/config"
	pkgerrors "github.com/tweenmart/storefront-backend/pkg/errors"
	"github.com/tweenmart/storefront-backend/pkg/logger"
	pkgredis "github.com/tweenmart/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TweenMart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when every wired backend answers a ping.
// Nil pingers are skipped so optional backends do not fail readiness.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisP, pubsubP pkgredis.Pinger) http.HandlerFunc {
	checks := []struct {
		name   string
		pinger pkgredis.Pinger
	}{
		{name: "redis", pinger: redisP},
		{name: "pubsub", pinger: pubsubP},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TweenMart-Env", cfg.App.Env)

		for _, check := range checks {
			if check.pinger == nil {
				continue
			}
			if err := check.pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, check.name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
