package main

import (
	"context"
	"crypto/rsa"
	"flag"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"googlemaps.github.io/maps"

	"github.com/dgrijalva/jwt-go"
	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"github.com/uber-go/tally"
	"github.com/uber-go/tally/prometheus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/bitmark-inc/mutual-aid-api/api"
	"github.com/bitmark-inc/mutual-aid-api/background"
	"github.com/bitmark-inc/mutual-aid-api/consts"
	"github.com/bitmark-inc/mutual-aid-api/external/onesignal"
	"github.com/bitmark-inc/mutual-aid-api/geo"
	"github.com/bitmark-inc/mutual-aid-api/help"
	"github.com/bitmark-inc/mutual-aid-api/relay"
	"github.com/bitmark-inc/mutual-aid-api/store"
	"github.com/bitmark-inc/mutual-aid-api/utils"
)

var (
	server      *api.Server
	mongoClient *mongo.Client
	ledger      *background.RedisLedger
	amqpConn    *amqp.Connection
	metrics     tally.Scope
)

func initLog() {
	logLevel, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(logLevel)
	}

	log.SetOutput(os.Stdout)

	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("mutualaid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

// loadJWTPublicKey reads the key which verifies caller tokens. A private key
// file is accepted as well.
func loadJWTPublicKey() (*rsa.PublicKey, error) {
	keyBytes, err := ioutil.ReadFile(viper.GetString("jwt.keyfile"))
	if err != nil {
		return nil, err
	}

	if key, err := jwt.ParseRSAPublicKeyFromPEM(keyBytes); err == nil {
		return key, nil
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEMWithPassword(keyBytes, viper.GetString("jwt.password"))
	if err != nil {
		return nil, err
	}
	return &privateKey.PublicKey, nil
}

func newSender(httpClient *http.Client) (background.Sender, error) {
	switch transport := viper.GetString("notification.transport"); transport {
	case "amqp":
		conn, err := amqp.Dial(viper.GetString("amqp.conn"))
		if err != nil {
			return nil, err
		}
		amqpConn = conn

		channel, err := conn.Channel()
		if err != nil {
			return nil, err
		}

		exchange := viper.GetString("amqp.exchange")
		if err := channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return nil, err
		}
		return background.NewAMQPSender(channel, exchange, "help.broadcast"), nil
	case "", "onesignal":
		client := onesignal.NewClient(httpClient, viper.GetString("onesignal.apikey"), viper.GetString("onesignal.url"))
		return background.NewOneSignalSender(
			viper.GetString("onesignal.appid"),
			viper.GetString("onesignal.template.broadcast"),
			client), nil
	default:
		return nil, fmt.Errorf("unknown notification transport: %s", transport)
	}
}

func main() {
	var configFile string

	initialCtx, cancelInitialization := context.WithCancel(context.Background())

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Server is preparing to shutdown")

		if initialCtx != nil && cancelInitialization != nil {
			log.Info("Cancelling initialization")
			cancelInitialization()
			<-initialCtx.Done()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if server != nil {
			log.Info("Shutdown mobile api server")
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Server Shutdown:", err)
			}
		}

		if ledger != nil {
			log.Info("Shutting down notify ledger")
			if err := ledger.Close(); err != nil {
				log.Error(err)
			}
		}

		if amqpConn != nil {
			log.Info("Shutting down amqp connection")
			if err := amqpConn.Close(); err != nil {
				log.Error(err)
			}
		}

		if mongoClient != nil {
			log.Info("Shutting down mongo store")
			if err := mongoClient.Disconnect(ctx); err != nil {
				log.Error(err)
			}
		}

		sentry.Flush(5 * time.Second)
		os.Exit(1)
	}()

	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)

	initLog()

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	// Sentry
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		log.Error(err)
	}
	log.WithField("prefix", "init").Info("Initialized sentry")

	if dir := viper.GetString("i18n.dir"); dir != "" {
		utils.InitI18NBundle(dir)
		log.WithField("prefix", "init").Info("Loaded i18n messages")
	}

	// Metrics
	reporter := prometheus.NewReporter(prometheus.Options{})
	scope, scopeCloser := tally.NewRootScope(tally.ScopeOptions{
		Prefix:         "mutual_aid",
		CachedReporter: reporter,
		Separator:      prometheus.DefaultSeparator,
	}, time.Second)
	defer scopeCloser.Close()
	metrics = scope

	jwtPublicKey, err := loadJWTPublicKey()
	if err != nil {
		log.Panic(err)
	}
	log.WithField("prefix", "init").Info("Loaded jwt key")

	// initialise mongodb connections
	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err = mongo.NewClient(opts)
	if nil != err {
		log.Panicf("create mongo client with error: %s", err)
	}

	err = mongoClient.Connect(initialCtx)
	if nil != err {
		log.Panicf("connect mongo database with error: %s", err)
	}
	mongoStore := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"), viper.GetDuration("store.timeout"))

	// Notification dispatcher
	sender, err := newSender(httpClient)
	if err != nil {
		log.Panic(err)
	}

	var notifyLedger background.Ledger
	if conn := viper.GetString("redis.conn"); conn != "" {
		ledger, err = background.NewRedisLedger(conn, 2*consts.HelpExpiry)
		if err != nil {
			log.Panic(err)
		}
		notifyLedger = ledger
	}

	// every configured maps key backs up the previous one
	var resolver geo.LocationResolver
	var geocoders []geo.LocationResolver
	for _, key := range append([]string{viper.GetString("googlemaps.apikey")}, viper.GetStringSlice("googlemaps.backup_apikeys")...) {
		if key == "" {
			continue
		}
		mapClient, err := maps.NewClient(maps.WithAPIKey(key), maps.WithHTTPClient(httpClient))
		if err != nil {
			log.Panic(err)
		}
		geocoders = append(geocoders, geo.NewGeocodingLocationResolver(mapClient))
	}
	if len(geocoders) > 0 {
		resolver = geo.NewMultipleLocationResolver(geocoders...)
	}

	dispatcher := background.NewDispatcher(sender, notifyLedger, resolver, metrics, background.DispatcherConfig{
		Timeout:  viper.GetDuration("dispatch.timeout"),
		Language: viper.GetString("notification.language"),
		Timezone: utils.GetLocation(viper.GetString("notification.timezone")),
	})

	coordinator := help.New(mongoStore, dispatcher, metrics, help.Config{
		Expiry:   viper.GetDuration("help.expiry"),
		Language: viper.GetString("notification.language"),
	})

	messageRelay := relay.New(mongoStore, metrics, relay.Config{
		PollInterval: viper.GetDuration("relay.poll_interval"),
		DisableWatch: viper.GetBool("relay.disable_watch"),
	})

	// Init http server
	server = api.NewServer(
		coordinator,
		messageRelay,
		mongoStore,
		jwtPublicKey,
		reporter.HTTPHandler())
	log.WithField("prefix", "init").Info("Initialized http server")

	// Remove initial context
	initialCtx = nil
	cancelInitialization = nil

	log.Fatal(server.Run(":" + viper.GetString("server.port")))
}
