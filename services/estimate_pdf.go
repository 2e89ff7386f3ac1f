package services

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	marotoimage "github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateEstimatePDF renders the estimate document using maroto/v2 and
// returns the raw PDF bytes. A missing or unreadable logo never fails the
// export; a text placeholder takes its place.
func GenerateEstimatePDF(data *EstimateData, logoPath string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addEstimateHeader(m, data, logoPath)
	addEstimateBanner(m, data)
	addEstimateTable(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate estimate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addEstimateHeader lays out logo, document title, client placeholder, the
// issuer contact block and the REF/DATE/Version block.
func addEstimateHeader(m core.Maroto, data *EstimateData, logoPath string) {
	titleStyle := props.Text{
		Size:  11,
		Style: fontstyle.Bold,
		Align: align.Center,
	}
	placeholderStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	// Row 1: logo (left), title + project name (center), client placeholder (right).
	logoCol := col.New(3)
	if logoUsable(logoPath) {
		logoCol = logoCol.Add(marotoimage.NewFromFile(logoPath, props.Rect{
			Center:  true,
			Percent: 80,
		}))
	} else {
		logoCol = logoCol.Add(text.New("PROSEEN / LOGO", placeholderStyle))
	}

	m.AddRows(
		row.New(22).Add(
			logoCol,
			col.New(6).Add(
				text.New(DocumentTitle, titleStyle),
				text.New(strings.ToUpper(data.ProjectName), props.Text{
					Size:  10,
					Style: fontstyle.Bold,
					Align: align.Center,
					Top:   12,
				}),
			),
			col.New(3).Add(text.New("CLIENT (Logo Client)", placeholderStyle)),
		),
	)

	m.AddRows(row.New(3))

	issuerStyle := props.Text{Size: 8, Align: align.Left}
	refLabelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	// Row 2: issuer contact block (left) + REF/DATE/Version block (right).
	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New(IssuerName, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(fmt.Sprintf("REF: %s", data.Reference), refLabelStyle)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(IssuerCity, issuerStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("DATE: %s", data.Date), refLabelStyle)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(IssuerPhone, issuerStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("Version: %s", data.Version), refLabelStyle)),
		),
		row.New(5).Add(
			col.New(6).Add(text.New(IssuerEmail, issuerStyle)),
		),
	)

	m.AddRows(row.New(3))
}

// addEstimateBanner adds the two-cell study request banner.
func addEstimateBanner(m core.Maroto, data *EstimateData) {
	bannerBg := &props.Color{Red: 230, Green: 230, Blue: 230}
	bannerCell := &props.Cell{BackgroundColor: bannerBg}
	bannerStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Left:  2,
	}

	m.AddRows(
		row.New(9).Add(
			col.New(4).Add(text.New("DEMANDE D'ÉTUDE :", bannerStyle)).WithStyle(bannerCell),
			col.New(8).Add(text.New(fmt.Sprintf("OBJET: %s", data.ProjectName), bannerStyle)).WithStyle(bannerCell),
		),
	)

	m.AddRows(row.New(3))
}

// addEstimateTable renders the single items table: header, index row, one
// grey group-header row per category followed by its item rows, and the
// closing grand total row.
func addEstimateTable(m core.Maroto, data *EstimateData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(4).Add(text.New("DÉSIGNATION", headerText)).WithStyle(headerCell),
			col.New(1).Add(text.New("QTÉ", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("P.U (FCFA)", headerText)).WithStyle(headerCell),
			col.New(2).Add(text.New("P.T (FCFA)", headerText)).WithStyle(headerCell),
			col.New(3).Add(text.New("OBSERVATIONS", headerText)).WithStyle(headerCell),
		),
	)

	indexText := props.Text{
		Size:  7,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	m.AddRows(
		row.New(5).Add(
			col.New(4).Add(text.New("(1)", indexText)),
			col.New(1).Add(text.New("(2)", indexText)),
			col.New(2).Add(text.New("(3)", indexText)),
			col.New(2).Add(text.New("(4)", indexText)),
			col.New(3).Add(text.New("(5)", indexText)),
		),
	)

	groupBg := &props.Color{Red: 217, Green: 217, Blue: 217}
	groupCell := &props.Cell{BackgroundColor: groupBg}
	groupText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Left,
		Left:  2,
	}

	bodyLeft := props.Text{Size: 8, Align: align.Left, Left: 1}
	bodyCenter := props.Text{Size: 8, Align: align.Center}
	bodyRight := props.Text{Size: 8, Align: align.Right, Right: 1}

	for _, section := range data.Sections {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(section.Label, groupText)).WithStyle(groupCell),
			),
		)

		for _, r := range section.Rows {
			m.AddRows(
				row.New(6).Add(
					col.New(4).Add(text.New(TruncateDescription(r.Description), bodyLeft)),
					col.New(1).Add(text.New(FormatQuantity(r.Quantity), bodyCenter)),
					col.New(2).Add(text.New(FormatFCFA(r.UnitPrice), bodyRight)),
					col.New(2).Add(text.New(FormatFCFA(r.Total), bodyRight)),
					col.New(3).Add(text.New("", bodyLeft)),
				),
			)
		}
	}

	totalBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	totalCell := &props.Cell{BackgroundColor: totalBg}
	totalLabel := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
		Left:  2,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	totalValue := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Right: 1,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(5).Add(text.New("TOTAL GÉNÉRAL", totalLabel)).WithStyle(totalCell),
			col.New(4).Add(text.New(FormatFCFA(data.GrandTotal), totalValue)).WithStyle(totalCell),
			col.New(3).Add(text.New("", totalLabel)).WithStyle(totalCell),
		),
	)
}

// logoUsable reports whether the file at path exists and decodes as an image
// maroto can embed. Any failure means the text placeholder is used instead.
func logoUsable(path string) bool {
	if path == "" {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}
