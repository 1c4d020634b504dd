package api

import (
	"context"
	"crypto/rsa"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/mutual-aid-api/help"
	"github.com/bitmark-inc/mutual-aid-api/logmodule"
	"github.com/bitmark-inc/mutual-aid-api/relay"
	"github.com/bitmark-inc/mutual-aid-api/store"
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

const (
	defaultRateLimit = 5
	defaultRateBurst = 10
)

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Domain services
	coordinator *help.Coordinator
	relay       *relay.Relay

	// Stores
	store store.Pinger

	// JWT public key of the identity provider
	jwtPublicKey *rsa.PublicKey

	// Per-caller limiter of mutating routes
	limiter *callerLimiter

	// prometheus exposition of the metrics scope
	metrics http.Handler
}

// NewServer new instance of server
func NewServer(
	coordinator *help.Coordinator,
	messageRelay *relay.Relay,
	pinger store.Pinger,
	jwtKey *rsa.PublicKey,
	metrics http.Handler) *Server {
	rps := viper.GetFloat64("ratelimit.rps")
	if rps <= 0 {
		rps = defaultRateLimit
	}
	burst := viper.GetInt("ratelimit.burst")
	if burst <= 0 {
		burst = defaultRateBurst
	}

	if metrics == nil {
		metrics = http.NotFoundHandler()
	}

	return &Server{
		coordinator:  coordinator,
		relay:        messageRelay,
		store:        pinger,
		jwtPublicKey: jwtKey,
		limiter:      newCallerLimiter(rate.Limit(rps), burst),
		metrics:      metrics,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.GET("/information", s.information)

	// api route other than `/information` will apply the following middleware
	apiRoute.Use(s.authMiddleware())

	profileRoute := apiRoute.Group("/me")
	{
		profileRoute.GET("", s.profileDetail)
		profileRoute.PATCH("", s.rateLimit(), s.profileUpdateDisplayName)
		profileRoute.PUT("/location", s.rateLimit(), s.profileUpdateLocation)
		profileRoute.PUT("/resources", s.rateLimit(), s.profileUpdateResources)
		profileRoute.PUT("/visibility", s.rateLimit(), s.profileUpdateVisibility)
		profileRoute.PUT("/privacy", s.rateLimit(), s.profileUpdatePrivacyRadius)
	}

	apiRoute.GET("/nearby", s.nearbyCandidates)
	apiRoute.POST("/nearby/:userID/request", s.rateLimit(), s.requestResource)

	helpRoute := apiRoute.Group("/helps")
	{
		helpRoute.POST("", s.rateLimit(), s.askForHelp)
		helpRoute.GET("/:helpID", s.helpDetail)
		helpRoute.DELETE("/:helpID", s.rateLimit(), s.cancelHelp)
		helpRoute.POST("/:helpID/complete", s.rateLimit(), s.completeHelp)
		helpRoute.POST("/:helpID/contact", s.rateLimit(), s.contactHelp)
	}

	sessionRoute := apiRoute.Group("/sessions")
	{
		sessionRoute.GET("", s.listSessions)
		sessionRoute.POST("", s.rateLimit(), s.contactUser)
		sessionRoute.GET("/:sessionID", s.sessionDetail)
		sessionRoute.GET("/:sessionID/messages", s.listMessages)
		sessionRoute.POST("/:sessionID/messages", s.rateLimit(), s.sendMessage)
		sessionRoute.PUT("/:sessionID/meeting", s.rateLimit(), s.setMeetingInfo)
		sessionRoute.POST("/:sessionID/read", s.markRead)
		sessionRoute.GET("/:sessionID/stream", s.streamMessages)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("", gin.WrapH(s.metrics))
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	// Ping db
	err := s.store.Ping()
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func (s *Server) information(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"information": map[string]interface{}{
			"server": map[string]interface{}{
				"version": viper.GetString("server.version"),
			},
			"help": map[string]interface{}{
				"expiry":           viper.GetDuration("help.expiry").String(),
				"kinds":            helpKinds,
				"note_max_length":  noteMaxLength,
				"message_max_size": messageMaxLength,
			},
			"docs": viper.GetStringMap("docs"),
		},
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}
