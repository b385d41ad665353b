package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		barcode_id TEXT,
		kyc_status TEXT NOT NULL DEFAULT 'pending',
		id_type TEXT,
		id_number TEXT,
		id_verified BOOLEAN DEFAULT 0,
		verified_full_name TEXT,
		kyc_reviewed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createWalletTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		balance_kobo INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE transactions (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount_kobo INTEGER NOT NULL,
		reference TEXT NOT NULL UNIQUE,
		description TEXT,
		task_id TEXT,
		trash_record_id TEXT,
		created_at DATETIME
	);`)
}

func createTrashRecordTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE trash_records (
		id TEXT PRIMARY KEY,
		collector_id TEXT NOT NULL,
		vendor_id TEXT NOT NULL,
		factory_id TEXT,
		trash_type TEXT NOT NULL,
		weight_grams INTEGER NOT NULL,
		status TEXT NOT NULL,
		rate_per_kg_kobo INTEGER NOT NULL DEFAULT 0,
		committed_payout_kobo INTEGER NOT NULL DEFAULT 0,
		vendor_payout_kobo INTEGER NOT NULL DEFAULT 0,
		kyc_warning BOOLEAN DEFAULT 0,
		cancel_reason TEXT,
		version INTEGER NOT NULL DEFAULT 1,
		confirmed_at DATETIME,
		shipped_at DATETIME,
		received_at DATETIME,
		paid_at DATETIME,
		cancelled_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPaymentRateTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payment_rates (
		id TEXT PRIMARY KEY,
		trash_type TEXT NOT NULL,
		rate_per_kg_kobo INTEGER NOT NULL,
		rate_per_ton_kobo INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 0,
		updated_by TEXT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createProfileTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vendor_profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		business_name TEXT NOT NULL,
		bank_name TEXT,
		account_number TEXT,
		account_name TEXT,
		state TEXT NOT NULL,
		lga TEXT NOT NULL,
		ward TEXT,
		verified BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE factories (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		accepted_trash_types TEXT NOT NULL,
		latitude REAL,
		longitude REAL,
		address TEXT,
		state TEXT,
		verified BOOLEAN DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createTaskTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE tasks (
		id TEXT PRIMARY KEY,
		factory_id TEXT NOT NULL,
		collector_id TEXT,
		trash_type TEXT NOT NULL,
		estimated_weight_grams INTEGER NOT NULL,
		reward_kobo INTEGER NOT NULL,
		location TEXT NOT NULL,
		description TEXT,
		status TEXT NOT NULL,
		accepted_at DATETIME,
		completed_at DATETIME,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

func createPlatformTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE support_tickets (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		status TEXT NOT NULL,
		admin_reply TEXT,
		replied_by TEXT,
		replied_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE audit_logs (
		id TEXT PRIMARY KEY,
		actor_id TEXT NOT NULL,
		action TEXT NOT NULL,
		entity_type TEXT NOT NULL,
		entity_id TEXT,
		detail TEXT,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE blog_posts (
		id TEXT PRIMARY KEY,
		author_id TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		published BOOLEAN DEFAULT 0,
		published_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
