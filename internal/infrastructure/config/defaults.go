package config

import "time"

// defaults lists every configuration key. A key missing here cannot be set
// from the environment.
var defaults = map[string]any{
	"app.name":    "pos-backend",
	"app.version": "dev",
	"app.env":     "development",
	"app.port":    "8080",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "pos",
	"database.sslmode":            "disable",
	"database.max_open_conns":     10,
	"database.max_idle_conns":     2,
	"database.conn_max_lifetime":  60,
	"database.conn_max_idle_time": 30,
	"database.log_level":          "warn",
	"database.auto_migrate":       false,

	"redis.host":     "",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout": 15 * time.Second,
	// checkout runs three sequential calls plus PDF rendering
	"http.write_timeout":       90 * time.Second,
	"http.idle_timeout":        60 * time.Second,
	"http.max_header_bytes":    1 << 20,
	"http.max_body_size":       1 << 20,
	"http.cors_allow_origins":  []string{},
	"http.trusted_proxies":     []string{},
	"http.checkout_rate_limit": 0,
	"http.rate_limit_window":   time.Minute,
	"http.swagger_enabled":     true,
	"http.swagger_allowed_ips": []string{},

	"checkout.seller":               "Raimundo",
	"checkout.payment_method":       "PIX",
	"checkout.call_timeout":         10 * time.Second,
	"checkout.zero_quantity_policy": "keep",
	"checkout.session_idle_timeout": 8 * time.Hour,
	"checkout.sweep_interval":       10 * time.Minute,

	"receipt.store_name":        "",
	"receipt.tax_id":            "",
	"receipt.address_lines":     []string{},
	"receipt.phone":             "",
	"receipt.consult_url":       "",
	"receipt.qrcode_base_url":   "",
	"receipt.series":            "",
	"receipt.default_number":    "",
	"receipt.access_key_prefix": "",
	"receipt.protocol_prefix":   "",
	"receipt.footer":            "",
	"receipt.timezone":          "America/Recife",
	"receipt.projection_ttl":    24 * time.Hour,

	"printing.pdf_enabled":       false,
	"printing.chrome_remote_url": "",
	"printing.no_sandbox":        false,
	"printing.render_timeout":    30 * time.Second,
	"printing.paper_size":        "RECEIPT_80MM",
	"printing.storage_backend":   "filesystem",
	"printing.base_path":         "./data/receipts",
	"printing.base_url":          "",
	"printing.retention":         time.Duration(0),
	"printing.cleanup_interval":  time.Hour,

	"storage.bucket":            "",
	"storage.region":            "us-east-1",
	"storage.endpoint":          "",
	"storage.access_key_id":     "",
	"storage.secret_access_key": "",
	"storage.use_path_style":    false,
	"storage.prefix":            "pos",
	"storage.presign_expiry":    24 * time.Hour,

	"breaker.enabled":           false,
	"breaker.max_requests":      1,
	"breaker.interval":          time.Minute,
	"breaker.timeout":           30 * time.Second,
	"breaker.failure_threshold": 5,

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.metrics_enabled":         false,
	"telemetry.metrics_export_interval": time.Minute,
	"telemetry.logs_enabled":            false,
	"telemetry.logs_level":              "info",
}
