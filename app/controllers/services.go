package controllers

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/LenaVoss/lenavoss-web/app/models"
	"github.com/LenaVoss/lenavoss-web/app/repository"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/audit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/cache"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/contact"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/geoip"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/mail"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/notify"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/ratelimit"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/storage"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/subscription"
	"github.com/LenaVoss/lenavoss-web/internal/pkg/visitortrack"
)

// Shared service singletons. Controllers are thin glue; everything with
// behavior lives in internal/pkg and is wired up lazily here, after the
// database and cache are ready.
var (
	resolverOnce sync.Once
	resolver     *geoip.Resolver

	formLimiterOnce sync.Once
	formLimiter     ratelimit.RateLimiter

	contactOnce     sync.Once
	contactPipeline *contact.Pipeline

	subscriptionOnce sync.Once
	subscriptionSvc  *subscription.Service

	trackerOnce sync.Once
	tracker     *visitortrack.Tracker

	dispatcherOnce sync.Once
	dispatcher     *notify.Dispatcher

	auditOnce   sync.Once
	auditLogger *audit.Logger

	storageOnce   sync.Once
	storageClient *storage.Client
)

func getResolver() *geoip.Resolver {
	resolverOnce.Do(func() {
		resolver = geoip.NewResolver()
	})
	return resolver
}

// resolveLocation looks up a geolocation with a day-long Redis cache in
// front of the provider. Cache failures just fall through to a lookup.
func resolveLocation(ip string) geoip.Location {
	key := "geoip:" + ip
	if raw, err := cache.Get(key); err == nil && raw != "" {
		var loc geoip.Location
		if json.Unmarshal([]byte(raw), &loc) == nil {
			return loc
		}
	}

	loc := getResolver().Resolve(ip)
	// Failed lookups stay uncached so a provider hiccup is retried on
	// the next visit.
	if loc.Country != nil {
		if data, err := json.Marshal(loc); err == nil {
			if err := cache.Set(key, data, 24*time.Hour); err != nil {
				log.Printf("failed to cache geolocation for %s: %v", ip, err)
			}
		}
	}
	return loc
}

// getFormLimiter is the shared contact/subscribe limiter: three
// submissions per minute per email and per address.
func getFormLimiter() ratelimit.RateLimiter {
	formLimiterOnce.Do(func() {
		formLimiter = ratelimit.New("form", time.Minute, 3)
	})
	return formLimiter
}

func getContactPipeline() *contact.Pipeline {
	contactOnce.Do(func() {
		contactPipeline = contact.NewPipeline(
			repository.GetGlobalRepositories().Message,
			getFormLimiter(),
			resolveLocation,
		)
	})
	return contactPipeline
}

func getSubscriptionService() *subscription.Service {
	subscriptionOnce.Do(func() {
		subscriptionSvc = subscription.NewService(repository.GetGlobalRepositories().Subscriber)
	})
	return subscriptionSvc
}

func getTracker() *visitortrack.Tracker {
	trackerOnce.Do(func() {
		repos := repository.GetGlobalRepositories()
		tracker = visitortrack.NewTracker(
			repos.VisitorLog,
			repos.Subscriber,
			repos.Message,
			ratelimit.New("visit", 5*time.Minute, 1),
			resolveLocation,
		)
	})
	return tracker
}

func getDispatcher() *notify.Dispatcher {
	dispatcherOnce.Do(func() {
		dispatcher = notify.NewDispatcher(
			repository.GetGlobalRepositories().Subscriber,
			mail.NewSMTPMailer(),
			models.GetAppSettings,
		)
	})
	return dispatcher
}

func getAudit() *audit.Logger {
	auditOnce.Do(func() {
		auditLogger = audit.NewLogger(repository.GetGlobalRepositories().SystemLog)
	})
	return auditLogger
}

// getStorage returns the media storage client, or nil when object
// storage is disabled or misconfigured. Upload endpoints answer 503 in
// that case.
func getStorage() *storage.Client {
	storageOnce.Do(func() {
		cfg, err := storage.LoadConfig()
		if err != nil {
			log.Printf("object storage config invalid: %v", err)
			return
		}
		if !cfg.IsEnabled() {
			return
		}
		client, err := storage.NewClient(cfg)
		if err != nil {
			log.Printf("object storage unavailable: %v", err)
			return
		}
		storageClient = client
	})
	return storageClient
}
