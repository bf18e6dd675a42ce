package models

// TransactionType is the direction of a transaction's amount.
type TransactionType string

const (
	TypeExpense  TransactionType = "expense"
	TypeIncome   TransactionType = "income"
	TypeTransfer TransactionType = "transfer"
)

// Channel identifies which ingestion channel produced a transaction.
// Reconciliation always pairs records across opposite channels.
type Channel string

const (
	// ChannelApp covers P2P payment apps and screenshot-derived records.
	ChannelApp Channel = "app"
	// ChannelCard covers credit-card notifications and statement rows.
	ChannelCard Channel = "card"
)

// Source is the provenance of a raw notification.
type Source string

const (
	SourceSMS   Source = "sms"
	SourceOCR   Source = "ocr"
	SourceEmail Source = "email"
)

// CategorySource records who assigned a transaction's category. It gates
// whether automation may overwrite the assignment.
type CategorySource string

const (
	CategorySourceAuto       CategorySource = "auto"
	CategorySourceUserManual CategorySource = "user_manual"
	CategorySourceRule       CategorySource = "rule"
)

// Transaction lifecycle statuses.
const (
	StatusProvisional = "provisional"
	StatusConfirmed   = "confirmed"
	StatusMerged      = "merged"
)

// NoteSeparator joins notes from two merged records so neither side's
// user-entered detail is lost.
const NoteSeparator = " | "
