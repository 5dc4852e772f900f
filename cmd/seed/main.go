// Seeds the development database with three Lahore shopkeepers whose
// customers follow distinct repayment behaviors, including a few risky
// customers shared across shops so community risk has signal.
package main

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/Maheenrz/smart-khata-ai/internal/config"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/database"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/password"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	shop_name     TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	city          TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
	id         UUID PRIMARY KEY,
	owner_id   UUID NOT NULL REFERENCES users(id),
	name       TEXT NOT NULL,
	phone      TEXT NOT NULL,
	area       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_customers_owner ON customers(owner_id);
CREATE INDEX IF NOT EXISTS idx_customers_area ON customers(area);

CREATE TABLE IF NOT EXISTS transactions (
	id          UUID PRIMARY KEY,
	customer_id UUID NOT NULL REFERENCES customers(id),
	amount      DOUBLE PRECISION NOT NULL,
	kind        TEXT NOT NULL,
	date_given  TIMESTAMPTZ NOT NULL,
	date_repaid TIMESTAMPTZ,
	is_repaid   BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
`

type behavior struct {
	delayDays     int
	defaultChance float64
}

var behaviors = map[string]behavior{
	"excellent": {delayDays: 2, defaultChance: 0.0},
	"good":      {delayDays: 5, defaultChance: 0.1},
	"average":   {delayDays: 10, defaultChance: 0.2},
	"risky":     {delayDays: 20, defaultChance: 0.4},
	"bad":       {delayDays: 35, defaultChance: 0.7},
}

type seedCustomer struct {
	name     string
	phone    string
	area     string
	behavior string
}

type seedShopkeeper struct {
	name      string
	shopName  string
	email     string
	password  string
	city      string
	customers []seedCustomer
}

// Imran Butt and Tariq Mehmood appear at multiple shops with bad
// behavior, which is what trips the community risk correlator.
var shopkeepers = []seedShopkeeper{
	{
		name:     "Ahmed Khan",
		shopName: "Khan General Store",
		email:    "ahmed@test.com",
		password: "test1234",
		city:     "Lahore",
		customers: []seedCustomer{
			{"Imran Butt", "03001234567", "Model Town", "bad"},
			{"Salman Raza", "03021234567", "Model Town", "good"},
			{"Usman Ali", "03031234567", "Model Town", "average"},
			{"Bilal Sheikh", "03041234567", "Gulberg", "excellent"},
			{"Kamran Iqbal", "03051234567", "Model Town", "risky"},
		},
	},
	{
		name:     "Farhan Siddiqui",
		shopName: "Siddiqui Kiryana",
		email:    "farhan@test.com",
		password: "test1234",
		city:     "Lahore",
		customers: []seedCustomer{
			{"Tariq Mehmood", "03011234567", "Gulberg", "bad"},
			{"Imran Butt", "03001234567", "Model Town", "bad"},
			{"Zeeshan Malik", "03061234567", "Gulberg", "average"},
			{"Hassan Nawaz", "03081234567", "DHA", "good"},
			{"Rizwan Ch", "03101234567", "Gulberg", "risky"},
		},
	},
	{
		name:     "Naveed Ahmed",
		shopName: "Naveed Brothers",
		email:    "naveed@test.com",
		password: "test1234",
		city:     "Lahore",
		customers: []seedCustomer{
			{"Asif Javed", "03091234567", "DHA", "bad"},
			{"Imran Butt", "03001234567", "Model Town", "bad"},
			{"Tariq Mehmood", "03011234567", "Gulberg", "bad"},
			{"Waseem Akram", "03131234567", "DHA", "excellent"},
			{"Junaid Khan", "03141234567", "DHA", "average"},
		},
	},
}

var amounts = []float64{500, 800, 1000, 1500, 2000, 2500, 3000}

const transactionsPerCustomer = 8

func main() {
	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	if _, err := db.Exec(schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	var userCount int
	if err := db.Get(&userCount, `SELECT COUNT(*) FROM users`); err != nil {
		log.Fatal().Err(err).Msg("Failed to check existing users")
	}
	if userCount > 0 {
		log.Info().Msg("Already seeded, skipping")
		return
	}

	// Fixed seed so repeated runs against a fresh database produce the
	// same ledgers.
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	var customers, transactions int
	for _, sk := range shopkeepers {
		ownerID, err := insertShopkeeper(db, sk, now)
		if err != nil {
			log.Fatal().Err(err).Str("shop", sk.shopName).Msg("Failed to create shopkeeper")
		}
		log.Info().Str("name", sk.name).Str("shop", sk.shopName).Msg("Created shopkeeper")

		for _, sc := range sk.customers {
			n, err := insertCustomer(db, rng, ownerID, sc, now)
			if err != nil {
				log.Fatal().Err(err).Str("customer", sc.name).Msg("Failed to create customer")
			}
			customers++
			transactions += n
			log.Info().Str("customer", sc.name).Str("behavior", sc.behavior).Msg("Added customer")
		}
	}

	log.Info().
		Int("shopkeepers", len(shopkeepers)).
		Int("customers", customers).
		Int("transactions", transactions).
		Msg("Seed complete")
}

func insertShopkeeper(db *sqlx.DB, sk seedShopkeeper, now time.Time) (uuid.UUID, error) {
	hash, err := password.Hash(sk.password)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	_, err = db.Exec(`
		INSERT INTO users (id, name, shop_name, email, password_hash, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`, id, sk.name, sk.shopName, sk.email, hash, sk.city, now)
	return id, err
}

func insertCustomer(db *sqlx.DB, rng *rand.Rand, ownerID uuid.UUID, sc seedCustomer, now time.Time) (int, error) {
	id := uuid.New()
	_, err := db.Exec(`
		INSERT INTO customers (id, owner_id, name, phone, area, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, id, ownerID, sc.name, sc.phone, sc.area, now)
	if err != nil {
		return 0, err
	}

	b := behaviors[sc.behavior]
	for i := 0; i < transactionsPerCustomer; i++ {
		dateGiven := now.AddDate(0, 0, -(5 + rng.Intn(86)))
		isRepaid := rng.Float64() > b.defaultChance

		var dateRepaid any
		if isRepaid {
			delay := b.delayDays + rng.Intn(8) - 2
			dateRepaid = dateGiven.AddDate(0, 0, delay)
		}

		_, err := db.Exec(`
			INSERT INTO transactions (id, customer_id, amount, kind, date_given, date_repaid, is_repaid)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New(), id, amounts[rng.Intn(len(amounts))], "credit", dateGiven, dateRepaid, isRepaid)
		if err != nil {
			return 0, err
		}
	}

	return transactionsPerCustomer, nil
}
