package server

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

const certCheckInterval = time.Minute

// CertLoader handles dynamic loading of TLS certificates.
// It checks the file modification time to reload the certificate when it
// changes, so rotated certificates are picked up without a restart.
type CertLoader struct {
	certFile string
	keyFile  string
	logger   *slog.Logger

	mu        sync.RWMutex
	cert      *tls.Certificate
	loadedAt  time.Time
	lastCheck time.Time
}

// NewCertLoader creates a CertLoader and performs the initial load.
func NewCertLoader(certFile, keyFile string, logger *slog.Logger) (*CertLoader, error) {
	loader := &CertLoader{
		certFile: certFile,
		keyFile:  keyFile,
		logger:   logger,
	}

	if err := loader.reload(); err != nil {
		return nil, err
	}

	return loader, nil
}

// GetCertificate is a callback for tls.Config.GetCertificate.
// Reload checks are rate limited to once per certCheckInterval to avoid
// stat calls on every handshake.
func (l *CertLoader) GetCertificate(hello *tls.ClientHelloInfo) (*tls.Certificate, error) {
	l.mu.RLock()
	if time.Since(l.lastCheck) < certCheckInterval {
		defer l.mu.RUnlock()
		return l.cert, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double check after lock
	if time.Since(l.lastCheck) < certCheckInterval {
		return l.cert, nil
	}
	l.lastCheck = time.Now()

	stat, err := os.Stat(l.certFile)
	if err != nil {
		l.logger.Warn("failed to stat certificate file, serving cached certificate",
			"cert_file", l.certFile, "error", err)
		return l.cert, nil
	}

	if stat.ModTime().After(l.loadedAt) {
		if err := l.reloadLocked(); err != nil {
			l.logger.Warn("failed to reload certificate, serving cached certificate",
				"cert_file", l.certFile, "error", err)
		}
	}

	return l.cert, nil
}

func (l *CertLoader) reload() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reloadLocked()
}

func (l *CertLoader) reloadLocked() error {
	cert, err := tls.LoadX509KeyPair(l.certFile, l.keyFile)
	if err != nil {
		return fmt.Errorf("loading key pair: %w", err)
	}

	l.cert = &cert
	l.loadedAt = time.Now()
	l.logger.Info("TLS certificate loaded", "cert_file", l.certFile)
	return nil
}
