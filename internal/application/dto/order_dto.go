package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest input for creating a production order.
type CreateOrderRequest struct {
	VerkoopOrder string           `json:"verkoop_order" validate:"required,max=50"`
	Project      string           `json:"project" validate:"omitempty,max=200"`
	Debiteur     string           `json:"debiteur" validate:"omitempty,max=200"`
	ArtikelType  string           `json:"artikel_type" validate:"omitempty,max=100"`
	Materiaal    string           `json:"materiaal" validate:"omitempty,max=200"`
	Aantal       int              `json:"aantal" validate:"omitempty,min=0"`
	LengteMM     *decimal.Decimal `json:"lengte_mm"`
	BreedteMM    *decimal.Decimal `json:"breedte_mm"`
	LeverDatum   *time.Time       `json:"lever_datum"`
	Opmerking    string           `json:"opmerking"`
}

// UpdateOrderRequest partial update: column name to new value. Every key
// is authorized per column before anything is written. Values are decoded
// per column kind (stage timestamps, slotje bool, text, decimals).
type UpdateOrderRequest map[string]any

// OrderResponse a full order record.
type OrderResponse struct {
	ID           string           `json:"id"`
	VerkoopOrder string           `json:"verkoop_order"`
	Project      string           `json:"project"`
	Debiteur     string           `json:"debiteur"`
	ArtikelType  string           `json:"artikel_type"`
	Materiaal    string           `json:"materiaal"`
	Aantal       int              `json:"aantal"`
	LengteMM     *decimal.Decimal `json:"lengte_mm,omitempty"`
	BreedteMM    *decimal.Decimal `json:"breedte_mm,omitempty"`

	Zaag       *time.Time `json:"zaag"`
	Pers       *time.Time `json:"pers"`
	NettoZaag  *time.Time `json:"netto_zaag"`
	Kantenband *time.Time `json:"kantenband"`
	CNCStart   *time.Time `json:"cnc_start"`
	PMTStart   *time.Time `json:"pmt_start"`

	Slotje            bool       `json:"slotje"`
	LeverDatum        *time.Time `json:"lever_datum"`
	Opmerking         string     `json:"opmerking"`
	Inkoopordernummer string     `json:"inkoopordernummer"`

	ZaagInstructie       string `json:"zaag_instructie"`
	PersInstructie       string `json:"pers_instructie"`
	NettoZaagInstructie  string `json:"netto_zaag_instructie"`
	KantenbandInstructie string `json:"kantenband_instructie"`
	CNCInstructie        string `json:"cnc_instructie"`
	PMTInstructie        string `json:"pmt_instructie"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScanOrderResponse is the fixed projection returned to the scanning
// station: identity, order number, descriptive fields and the six stage
// timestamps. Never the full record, so unrelated columns cannot leak
// into the scanner UI.
type ScanOrderResponse struct {
	ID           string     `json:"id"`
	VerkoopOrder string     `json:"verkoop_order"`
	Project      string     `json:"project"`
	Debiteur     string     `json:"debiteur"`
	ArtikelType  string     `json:"artikel_type"`
	Materiaal    string     `json:"materiaal"`
	Zaag         *time.Time `json:"zaag"`
	Pers         *time.Time `json:"pers"`
	NettoZaag    *time.Time `json:"netto_zaag"`
	Kantenband   *time.Time `json:"kantenband"`
	CNCStart     *time.Time `json:"cnc_start"`
	PMTStart     *time.Time `json:"pmt_start"`
}
