package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to the MySQL instance holding the marketplace tables
// (seller_listings, buyer_requests, users) and verifies the connection
// before the server starts taking requests.
//
// Listing and request dates are DATETIME columns; parseTime with loc=UTC
// scans them straight into time.Time in the one zone the API uses end to
// end.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	creds := user
	if pass != "" {
		creds = user + ":" + pass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		creds, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Listing reads dominate the traffic; reservations are short single-row
	// writes.  A modest pool with idle recycling covers both without holding
	// connections the service is not using.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
