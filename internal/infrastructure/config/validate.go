package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strings"
	"time"
)

var (
	zeroQuantityPolicies = []string{"keep", "prune"}
	paperSizes           = []string{"A4", "RECEIPT_58MM", "RECEIPT_80MM"}
	storageBackends      = []string{"filesystem", "s3"}
)

// Widths of vendas.vendedor and vendas.forma_pagamento
const (
	maxSellerLen        = 100
	maxPaymentMethodLen = 30
)

// validate reports every problem of the configuration at once
func (c *Config) validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	oneOf := func(key, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			fail("%s must be one of %v, got %q", key, allowed, value)
		}
	}

	db := c.Database
	switch {
	case db.MaxOpenConns <= 0:
		fail("database.max_open_conns must be positive")
	case db.MaxIdleConns < 0:
		fail("database.max_idle_conns cannot be negative")
	case db.MaxIdleConns > db.MaxOpenConns:
		fail("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)", db.MaxIdleConns, db.MaxOpenConns)
	}

	oneOf("checkout.zero_quantity_policy", c.Checkout.ZeroQuantityPolicy, zeroQuantityPolicies)
	if c.Checkout.CallTimeout < 0 {
		fail("checkout.call_timeout cannot be negative")
	}
	if c.Checkout.SessionIdleTimeout <= 0 {
		fail("checkout.session_idle_timeout must be positive")
	}
	if c.Checkout.SweepInterval <= 0 {
		fail("checkout.sweep_interval must be positive")
	}
	if n := len(c.Checkout.Seller); n > maxSellerLen {
		fail("checkout.seller is %d bytes, the limit is %d", n, maxSellerLen)
	}
	if n := len(c.Checkout.PaymentMethod); n > maxPaymentMethodLen {
		fail("checkout.payment_method is %d bytes, the limit is %d", n, maxPaymentMethodLen)
	}

	switch {
	case c.HTTP.CheckoutRateLimit < 0:
		fail("http.checkout_rate_limit cannot be negative")
	case c.HTTP.CheckoutRateLimit > 0 && c.HTTP.RateLimitWindow <= 0:
		fail("http.rate_limit_window must be positive when http.checkout_rate_limit is set")
	}
	for _, entry := range c.HTTP.SwaggerAllowedIPs {
		if !validAllowEntry(entry) {
			fail("http.swagger_allowed_ips: %q is neither an address nor a CIDR range", entry)
		}
	}
	if _, err := time.LoadLocation(c.Receipt.Timezone); err != nil {
		fail("receipt.timezone: %w", err)
	}

	oneOf("printing.paper_size", c.Printing.PaperSize, paperSizes)
	oneOf("printing.storage_backend", c.Printing.StorageBackend, storageBackends)
	if c.Printing.StorageBackend == "s3" && c.Storage.Bucket == "" {
		fail("storage.bucket is required when printing.storage_backend is s3")
	}
	if c.Printing.Retention < 0 {
		fail("printing.retention cannot be negative")
	}
	if c.Printing.Retention > 0 && c.Printing.CleanupInterval <= 0 {
		fail("printing.cleanup_interval must be positive when printing.retention is set")
	}

	if r := c.Telemetry.SamplingRatio; r < 0 || r > 1 {
		fail("telemetry.sampling_ratio must be between 0 and 1, got %g", r)
	}

	if c.App.Env == "production" {
		if db.Password == "" {
			fail("database.password is required in production")
		}
		if db.SSLMode == "disable" {
			fail("database.sslmode cannot be 'disable' in production")
		}
		if slices.Contains(c.HTTP.CORSAllowOrigins, "*") {
			fail("http.cors_allow_origins cannot be '*' in production")
		}
		if c.Telemetry.DBLogFullSQL {
			fail("telemetry.db_log_full_sql must be false in production")
		}
	}
	return errors.Join(errs...)
}

func validAllowEntry(entry string) bool {
	entry = strings.TrimSpace(entry)
	if strings.Contains(entry, "/") {
		_, _, err := net.ParseCIDR(entry)
		return err == nil
	}
	return net.ParseIP(entry) != nil
}
