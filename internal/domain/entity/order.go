package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a production order on the shared order table. The stage
// timestamps are independently nullable and may be stamped out of order:
// sequencing is a shop-floor concern, not enforced here.
type Order struct {
	ID           string
	VerkoopOrder string // business-facing order number, scan key (unique)
	Project      string
	Debiteur     string // customer
	ArtikelType  string
	Materiaal    string
	Aantal       int
	LengteMM     *decimal.Decimal
	BreedteMM    *decimal.Decimal

	// Production stages, in shop order: rough-cut sawing, pressing,
	// finish-cut sawing, edge-banding, CNC start, PMT start.
	Zaag       *time.Time
	Pers       *time.Time
	NettoZaag  *time.Time
	Kantenband *time.Time
	CNCStart   *time.Time
	PMTStart   *time.Time

	// Slotje locks the record against stage edits by non-planning roles.
	Slotje bool

	// Sales-maintained fields.
	LeverDatum        *time.Time
	Opmerking         string
	Inkoopordernummer string

	// Per-stage work instructions, shown as popups at the stations.
	ZaagInstructie       string
	PersInstructie       string
	NettoZaagInstructie  string
	KantenbandInstructie string
	CNCInstructie        string
	PMTInstructie        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// StageField returns a pointer to the stage timestamp for a stage column
// name, or nil if the column is not a stage field.
func (o *Order) StageField(column string) **time.Time {
	switch column {
	case "zaag":
		return &o.Zaag
	case "pers":
		return &o.Pers
	case "netto_zaag":
		return &o.NettoZaag
	case "kantenband":
		return &o.Kantenband
	case "cnc_start":
		return &o.CNCStart
	case "pmt_start":
		return &o.PMTStart
	}
	return nil
}
