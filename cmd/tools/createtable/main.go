package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Bootstraps the schema. The DSN needs multiStatements=true.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	sql := `
	CREATE TABLE IF NOT EXISTS users (
	  id CHAR(36) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  password_hash VARBINARY(100) NOT NULL,
	  first_name VARCHAR(100) NOT NULL,
	  last_name VARCHAR(100) NOT NULL,
	  role VARCHAR(32) NOT NULL DEFAULT 'customer',
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS products (
	  id CHAR(36) NOT NULL,
	  name VARCHAR(255) NOT NULL,
	  slug VARCHAR(255) NOT NULL,
	  price_cents BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL DEFAULT 'USD',
	  active TINYINT(1) NOT NULL DEFAULT 1,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_products_slug (slug)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS product_variants (
	  id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  price_cents BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL DEFAULT 'USD',
	  stock INT NOT NULL DEFAULT 0,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_product_variants_sku (sku),
	  KEY ix_product_variants_product_id (product_id),
	  CONSTRAINT fk_product_variants_product FOREIGN KEY (product_id) REFERENCES products(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS orders (
	  id CHAR(36) NOT NULL,
	  order_number VARCHAR(32) NOT NULL,
	  user_id CHAR(36) NOT NULL,
	  subtotal_cents BIGINT NOT NULL,
	  tax_cents BIGINT NOT NULL,
	  shipping_cents BIGINT NOT NULL,
	  total_cents BIGINT NOT NULL,
	  refunded_cents BIGINT NOT NULL DEFAULT 0,
	  currency CHAR(3) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  payment_status VARCHAR(32) NOT NULL,
	  payment_method VARCHAR(64) NULL,
	  payment_intent_id VARCHAR(128) NULL,
	  shipping_address_json JSON NULL,
	  billing_address_json JSON NULL,
	  notes VARCHAR(1000) NULL,
	  paid_at DATETIME(3) NULL,
	  refunded_at DATETIME(3) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_orders_order_number (order_number),
	  KEY ix_orders_user_id (user_id),
	  KEY ix_orders_payment_intent_id (payment_intent_id),
	  CONSTRAINT fk_orders_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE RESTRICT
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_items (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  product_id CHAR(36) NOT NULL,
	  variant_id CHAR(36) NULL,
	  product_name VARCHAR(255) NOT NULL,
	  sku VARCHAR(64) NOT NULL,
	  unit_price_cents BIGINT NOT NULL,
	  quantity INT NOT NULL,
	  line_total_cents BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_items_order_id (order_id),
	  KEY ix_order_items_product_id (product_id),
	  CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS order_events (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  actor_user_id CHAR(36) NOT NULL,
	  action VARCHAR(32) NOT NULL,
	  from_status VARCHAR(32) NOT NULL,
	  to_status VARCHAR(32) NOT NULL,
	  note VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_order_events_order_id (order_id),
	  CONSTRAINT fk_order_events_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  provider VARCHAR(64) NOT NULL,
	  provider_ref VARCHAR(128) NULL,
	  status VARCHAR(32) NOT NULL,
	  amount_cents BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  idempotency_key VARCHAR(64) NOT NULL,
	  error_message VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_payments_order_id (order_id),
	  KEY ix_payments_provider_ref (provider_ref),
	  CONSTRAINT fk_payments_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS refunds (
	  id CHAR(36) NOT NULL,
	  order_id CHAR(36) NOT NULL,
	  payment_id CHAR(36) NOT NULL,
	  provider VARCHAR(64) NOT NULL,
	  provider_ref VARCHAR(128) NULL,
	  status VARCHAR(32) NOT NULL,
	  amount_cents BIGINT NOT NULL,
	  currency CHAR(3) NOT NULL,
	  idempotency_key VARCHAR(64) NOT NULL,
	  reason VARCHAR(255) NULL,
	  error_message VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_refunds_order_id (order_id),
	  KEY ix_refunds_payment_id (payment_id),
	  CONSTRAINT fk_refunds_order FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
	  CONSTRAINT fk_refunds_payment FOREIGN KEY (payment_id) REFERENCES payments(id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS provider_events (
	  id CHAR(36) NOT NULL,
	  provider VARCHAR(64) NOT NULL,
	  event_id VARCHAR(128) NOT NULL,
	  event_type VARCHAR(64) NOT NULL,
	  payload_json JSON NOT NULL,
	  received_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  processed_at DATETIME(3) NULL,
	  process_error VARCHAR(255) NULL,
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_provider_events_provider_event (provider, event_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;

	CREATE TABLE IF NOT EXISTS email_outbox (
	  id CHAR(36) NOT NULL,
	  to_addr VARCHAR(255) NOT NULL,
	  to_name VARCHAR(255) NOT NULL DEFAULT '',
	  subject VARCHAR(255) NOT NULL,
	  text_body TEXT NOT NULL,
	  html_body TEXT NOT NULL,
	  status VARCHAR(16) NOT NULL DEFAULT 'pending',
	  attempts INT NOT NULL DEFAULT 0,
	  last_error VARCHAR(255) NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3) ON UPDATE CURRENT_TIMESTAMP(3),
	  sent_at DATETIME(3) NULL,
	  PRIMARY KEY (id),
	  KEY ix_email_outbox_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(sql); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Println("✓ schema created successfully")
}
