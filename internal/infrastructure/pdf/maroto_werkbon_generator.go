// Package pdf renders the printable werkbon (work ticket) that travels
// with a production order through the shop.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Verkooporder + barcode  │  Project + Leverdatum     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ORDER: Debiteur / Artikel / Materiaal / Aantal / Maten      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABEL: Bewerking | Gereed op | Instructie                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Opmerking + slotje indicator                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/hgl-interieur/ordertrack-api/internal/application/usecase"
	"github.com/hgl-interieur/ordertrack-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 20, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoWerkbonGenerator implements usecase.WerkbonGenerator using
// Maroto v2.
type MarotoWerkbonGenerator struct {
	// baseURL is the externally visible base URL; when set the footer
	// carries a direct link to the order's scan page.
	baseURL string
}

var _ usecase.WerkbonGenerator = (*MarotoWerkbonGenerator)(nil)

// NewMarotoWerkbonGenerator builds the generator.
func NewMarotoWerkbonGenerator(baseURL string) *MarotoWerkbonGenerator {
	return &MarotoWerkbonGenerator{baseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateWerkbonPDF renders the werkbon and returns its bytes.
func (g *MarotoWerkbonGenerator) GenerateWerkbonPDF(_ context.Context, order *entity.Order) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Werkbon "+order.VerkoopOrder, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(stagesHeaderRow())
	for _, r := range stageRows(order) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate werkbon: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: order number + Code128 barcode (left), project and delivery
// date (right). The barcode lets every station scan the paper instead of
// typing the number.
func headerRow(order *entity.Order) core.Row {
	lever := "—"
	if order.LeverDatum != nil {
		lever = order.LeverDatum.Format("02-01-2006")
	}
	return row.New(24).Add(
		col.New(7).Add(
			text.New("WERKBON "+order.VerkoopOrder, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			code.NewBar(order.VerkoopOrder, props.Barcode{
				Top: 8, Left: 1, Percent: 90,
			}),
		),
		col.New(5).Add(
			text.New("PRODUCTIEORDER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(order.Project, "—"), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Leverdatum: "+lever, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// orderRow: customer and material facts.
func orderRow(order *entity.Order) core.Row {
	maten := "—"
	if order.LengteMM != nil && order.BreedteMM != nil {
		maten = order.LengteMM.StringFixed(0) + " x " + order.BreedteMM.StringFixed(0) + " mm"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ORDERGEGEVENS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Debiteur: %s   |   Artikel: %s   |   Materiaal: %s",
				nonEmpty(order.Debiteur, "—"),
				nonEmpty(order.ArtikelType, "—"),
				nonEmpty(order.Materiaal, "—"),
			), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Aantal: %d   |   Maten: %s", order.Aantal, maten),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func stagesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Bewerking", 3, align.Left),
		h("Gereed op", 3, align.Center),
		h("Instructie", 6, align.Left),
	)
}

// stageRows: one row per production stage, in shop order.
func stageRows(order *entity.Order) []core.Row {
	type stage struct {
		label       string
		when        string
		instruction string
	}
	list := []stage{
		{"Zagen (grof)", stampText(order.Zaag), order.ZaagInstructie},
		{"Persen", stampText(order.Pers), order.PersInstructie},
		{"Netto zagen", stampText(order.NettoZaag), order.NettoZaagInstructie},
		{"Kantenbanden", stampText(order.Kantenband), order.KantenbandInstructie},
		{"CNC", stampText(order.CNCStart), order.CNCInstructie},
		{"PMT", stampText(order.PMTStart), order.PMTInstructie},
	}

	result := make([]core.Row, 0, len(list))
	for _, s := range list {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(s.label, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(s.when, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(nonEmpty(s.instruction, ""), props.Text{Size: 8, Top: 1, Color: colorGray})),
		))
	}
	return result
}

// footerRow: remark, scan-page link and the lock indicator.
func (g *MarotoWerkbonGenerator) footerRow(order *entity.Order) core.Row {
	slot := ""
	if order.Slotje {
		slot = "GEBLOKKEERD — wijzigingen alleen via planning"
	}
	left := col.New(8).Add(
		text.New("Opmerking: "+nonEmpty(order.Opmerking, "—"), props.Text{
			Size: 8, Top: 2, Color: colorGray,
		}),
	)
	if g.baseURL != "" {
		left.Add(text.New(g.baseURL+"/orders/scan/"+order.VerkoopOrder, props.Text{
			Size: 7, Top: 7, Color: colorGray,
		}))
	}
	return row.New(12).Add(
		left,
		col.New(4).Add(
			text.New(slot, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
			}),
		),
	)
}

func stampText(t *time.Time) string {
	if t == nil {
		return "________"
	}
	return t.Format("02-01 15:04")
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
