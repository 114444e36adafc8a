// Package webtls provisions TLS configurations for the web server: automatic
// certificates via CertMagic, BYO PEM files, or a self-signed cert for testing.
package webtls

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/caddyserver/certmagic"
)

// ALPN advertised alongside whatever CertMagic sets; h3 is required for the
// QUIC listener.
const alpnH3 = "h3"

// CertMagicConfig configures automatic certificate management with CertMagic.
type CertMagicConfig struct {
	Domain     string
	Email      string
	StorageDir string // optional; defaults to XDG or ~/.cache/lovchat/certmagic
	CA         string // optional; defaults to Let's Encrypt prod
	// ZeroSSL API issuance instead of ACME when set.
	ZeroSSLAPIKey string
	// Challenges
	EnableHTTP01   bool
	EnableTLSALPN  bool
	AltTLSALPNPort int
}

// BuildCertMagicTLS provisions/loads certificates via CertMagic and returns a
// TLS config plus an HTTP handler for HTTP-01 challenges (nil if disabled).
func BuildCertMagicTLS(cfg CertMagicConfig) (*tls.Config, http.Handler, error) {
	if cfg.Domain == "" {
		return nil, nil, errors.New("domain is required")
	}

	cm := certmagic.NewDefault()
	if cfg.StorageDir == "" {
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			cfg.StorageDir = filepath.Join(xdg, "lovchat", "certmagic")
		} else {
			home, _ := os.UserHomeDir()
			cfg.StorageDir = filepath.Join(home, ".cache", "lovchat", "certmagic")
		}
	}
	if err := os.MkdirAll(cfg.StorageDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("cert storage: %w", err)
	}
	cm.Storage = &certmagic.FileStorage{Path: cfg.StorageDir}

	var acmeIssuer *certmagic.ACMEIssuer
	if cfg.ZeroSSLAPIKey != "" {
		cm.Issuers = []certmagic.Issuer{&certmagic.ZeroSSLIssuer{APIKey: cfg.ZeroSSLAPIKey}}
	} else {
		ai := certmagic.NewACMEIssuer(cm, certmagic.ACMEIssuer{
			CA:                      ifEmpty(cfg.CA, certmagic.LetsEncryptProductionCA),
			Email:                   cfg.Email,
			Agreed:                  true,
			DisableHTTPChallenge:    !cfg.EnableHTTP01,
			DisableTLSALPNChallenge: !cfg.EnableTLSALPN,
			AltTLSALPNPort:          cfg.AltTLSALPNPort,
		})
		acmeIssuer = ai
		cm.Issuers = []certmagic.Issuer{ai}
	}

	if err := cm.ManageSync(context.Background(), []string{cfg.Domain}); err != nil {
		return nil, nil, err
	}

	tlsConf := cm.TLSConfig()
	tlsConf.NextProtos = ensureALPN(tlsConf.NextProtos)
	tlsConf.MinVersion = tls.VersionTLS13

	if acmeIssuer != nil && cfg.EnableHTTP01 {
		return tlsConf, acmeIssuer.HTTPChallengeHandler(nil), nil
	}
	return tlsConf, nil, nil
}

// BuildFileTLS loads a certificate from PEM files for BYO certs.
func BuildFileTLS(certFile, keyFile string) (*tls.Config, error) {
	if certFile == "" || keyFile == "" {
		return nil, errors.New("both certFile and keyFile are required")
	}

	c, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("load keypair: %w", err)
	}

	for i, b := range c.Certificate {
		cert, err := x509.ParseCertificate(b)
		if err != nil {
			return nil, fmt.Errorf("invalid certificate at index %d: %w", i, err)
		}
		now := time.Now()
		if now.Before(cert.NotBefore) {
			return nil, fmt.Errorf("certificate not yet valid (starts %s)", cert.NotBefore)
		}
		if now.After(cert.NotAfter) {
			return nil, fmt.Errorf("certificate expired on %s", cert.NotAfter)
		}
	}

	return &tls.Config{
		Certificates: []tls.Certificate{c},
		NextProtos:   ensureALPN(nil),
		MinVersion:   tls.VersionTLS13,
	}, nil
}

// SelfSignedTLS is for testing only. Prefer trusted certs in production.
func SelfSignedTLS() (*tls.Config, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	templ := &x509.Certificate{
		SerialNumber:          big.NewInt(time.Now().UnixNano()),
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	der, err := x509.CreateCertificate(rand.Reader, templ, templ, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	cert := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	pkcs8, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}
	priv := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: pkcs8})
	tlsCert, err := tls.X509KeyPair(cert, priv)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   ensureALPN(nil),
	}, nil
}

func ensureALPN(protos []string) []string {
	for _, p := range protos {
		if p == alpnH3 {
			return protos
		}
	}
	return append(protos, alpnH3)
}

func ifEmpty(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
