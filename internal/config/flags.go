package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags registers all configuration flags on fs and parses args.
//
// Flags:
//
//	-a server listen address in format [host]:[port]
//	-d database DSN
//	-f JSON snapshot path of the in-memory store
//	-c/-config json file path with configs
//	-issuer TOTP issuer label
//	-kdf content KDF for new users (scrypt|pbkdf2)
//	-password-iterations PBKDF2 iterations of new password verifiers
//	-token-sign-key login ticket signing key
//	-login-ticket-ttl login ticket lifetime (e.g., "5m")
//	-session-ttl session lifetime (e.g., "12h")
//	-request-timeout server request timeout (e.g., "30s", "1m")
//	-sweep-interval expired session sweep interval
//	-server-url base URL used by the client
//	-client-timeout client request timeout
func parseFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN, filesPath, jsonConfigPath string
	var issuer, kdf, tokenSignKey, serverURL string
	var passwordIterations int
	var loginTicketTTL, sessionTTL, requestTimeout, sweepInterval, clientTimeout time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&filesPath, "f", "", "JSON snapshot path of the in-memory store")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&issuer, "issuer", "", "TOTP issuer")
	fs.StringVar(&kdf, "kdf", "", "Content KDF for new users (scrypt|pbkdf2)")
	fs.IntVar(&passwordIterations, "password-iterations", 0, "PBKDF2 iterations of password verifiers")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Login ticket signing key")
	fs.DurationVar(&loginTicketTTL, "login-ticket-ttl", 0, "Login ticket lifetime (e.g., 5m)")
	fs.DurationVar(&sessionTTL, "session-ttl", 0, "Session lifetime (e.g., 12h, negative disables expiry)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&sweepInterval, "sweep-interval", 0, "Expired session sweep interval")
	fs.StringVar(&serverURL, "server-url", "", "Server base URL used by the client")
	fs.DurationVar(&clientTimeout, "client-timeout", 0, "Client request timeout")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			Issuer:             issuer,
			KDFAlgorithm:       kdf,
			PasswordIterations: passwordIterations,
			TokenSignKey:       tokenSignKey,
			LoginTicketTTL:     loginTicketTTL,
			SessionTTL:         sessionTTL,
		},
		Storage: Storage{
			DB:    DB{DSN: databaseDSN},
			Files: Files{Path: filesPath},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    serverURL,
			RequestTimeout: clientTimeout,
		},
		Workers:      Workers{SessionSweepInterval: sweepInterval},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
