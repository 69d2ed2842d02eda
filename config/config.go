package config

import (
	"flag"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultSubmitURL is the Apps Script web app backing the results sheet.
const DefaultSubmitURL = "https://script.google.com/macros/s/AKfycbz9aWSkQyK77URHkmJ4fQfypTZMIgGK25E7glUZkYa_DCkPYOxf0yY2o1oYo1L5dnq_/exec"

const envPrefix = "CASE_REPORT_"

type Config struct {
	Addr          string
	SubmitURL     string
	SubmitTimeout time.Duration
	Enabled       bool
	SessionTTL    time.Duration
	Debug         bool
}

// LoadEnv reads a .env file into the process environment, if there is one.
// Variables already set are left alone.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "load %s", f)
		}
	}
	return nil
}

// ParseFlags parses args (without the program name). Every flag falls back
// to a CASE_REPORT_* environment variable, then to its built-in default.
func ParseFlags(args []string) (cfg Config, err error) {
	fs := flag.NewFlagSet("case-report", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", env("HOST", "0.0.0.0"), "listen host name")
	var port uint
	fs.UintVar(&port, "port", envUint("PORT", 8080), "listen port number")
	fs.StringVar(&cfg.SubmitURL, "submit-url", env("SUBMIT_URL", DefaultSubmitURL), "spreadsheet endpoint receiving reports")
	var timeout uint
	fs.UintVar(&timeout, "submit-timeout", envUint("SUBMIT_TIMEOUT", 30), "outbound submission timeout in seconds")
	fs.BoolVar(&cfg.Enabled, "enabled", envBool("ENABLED", true), "show the submission panel (false shows the locked placeholder)")
	var ttl uint
	fs.UintVar(&ttl, "session-ttl", envUint("SESSION_TTL", 3600), "idle session lifetime in seconds")
	fs.BoolVar(&cfg.Debug, "debug", envBool("DEBUG", false), "log at DEBUG level")

	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.SubmitTimeout = time.Duration(timeout) * time.Second
	cfg.SessionTTL = time.Duration(ttl) * time.Second

	err = cfg.Validate()
	return
}

func (cfg Config) Validate() error {
	var result *multierror.Error

	u, err := url.Parse(cfg.SubmitURL)
	if err != nil {
		result = multierror.Append(result, errors.Wrap(err, "invalid -submit-url"))
	} else if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, errors.Errorf("invalid -submit-url %q: must be an absolute http(s) URL", cfg.SubmitURL))
	}
	if cfg.SubmitTimeout <= 0 {
		result = multierror.Append(result, errors.New("-submit-timeout must be positive"))
	}
	if cfg.SessionTTL <= 0 {
		result = multierror.Append(result, errors.New("-session-ttl must be positive"))
	}

	return result.ErrorOrNil()
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

func env(key, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + key); ok && v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint) uint {
	v, err := strconv.ParseUint(env(key, ""), 10, 0)
	if err != nil {
		return fallback
	}
	return uint(v)
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(env(key, ""))
	if err != nil {
		return fallback
	}
	return v
}
