package config

import "time"

// Default values applied to every field left empty by env, flags and JSON.
const (
	DefaultIssuer               = "INE5680-App"
	DefaultKDFAlgorithm         = "scrypt"
	DefaultPasswordIterations   = 200_000
	DefaultLoginTicketTTL       = 5 * time.Minute
	DefaultSessionTTL           = 12 * time.Hour
	DefaultHTTPAddress          = "localhost:8080"
	DefaultRequestTimeout       = 30 * time.Second
	DefaultAdapterAddress       = "http://localhost:8080"
	DefaultSessionSweepInterval = time.Minute
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Issuer:             DefaultIssuer,
			KDFAlgorithm:       DefaultKDFAlgorithm,
			PasswordIterations: DefaultPasswordIterations,
			LoginTicketTTL:     DefaultLoginTicketTTL,
			SessionTTL:         DefaultSessionTTL,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Workers: Workers{
			SessionSweepInterval: DefaultSessionSweepInterval,
		},
	}
}
