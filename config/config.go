package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                string
	MongoURL            string
	Database            string
	SurveysCollection   string
	ResponsesCollection string
	Debug               bool
}

// ParseFlags reads configuration from command line flags, with environment
// variables as defaults. A .env file is honored if present.
func ParseFlags() (cfg Config, err error) {
	_ = godotenv.Load()

	var host string
	flag.StringVar(&host, "host", envOr("HOST", "0.0.0.0"), "listen host name (default 0.0.0.0)")
	var port uint
	flag.UintVar(&port, "port", envUintOr("PORT", 80), "listen port number (default 80)")
	flag.StringVar(&cfg.MongoURL, "mongo-url", envOr("MONGODB_URL", "mongodb://localhost:27017"),
		"MongoDB connection string")
	flag.StringVar(&cfg.Database, "db", envOr("MONGODB_DATABASE", "survey_api"), "database name")
	flag.StringVar(&cfg.SurveysCollection, "surveys-collection", envOr("COLLECTION_SURVEYS", "surveys"),
		"surveys collection name")
	flag.StringVar(&cfg.ResponsesCollection, "responses-collection", envOr("COLLECTION_RESPONSES", "responses"),
		"responses collection name")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))

	if cfg.MongoURL == "" {
		err = errors.New("missing parameter -mongo-url")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUintOr(key string, fallback uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n)
		}
	}
	return fallback
}
