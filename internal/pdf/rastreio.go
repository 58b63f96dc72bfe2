// internal/pdf/rastreio.go
//
// Renders a tracking record as an A4 PDF. Layout is a single column of
// labeled sections with a running y cursor; long values wrap and a page
// break is inserted whenever a section would not fit.

package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/ipa-pe/safra/internal/format"
	"github.com/ipa-pe/safra/internal/rastreio"
)

const (
	pageMargin = 15.0
	lineHeight = 7.0
)

// Filename is the suggested name for an exported record.
func Filename(p *rastreio.Pedido) string {
	codigo := p.Codigo()
	if strings.TrimSpace(codigo) == "" {
		codigo = "SemCodigo"
	}
	return "Rastreamento_" + codigo + ".pdf"
}

// Export renders p and writes the PDF into dir, returning the full path.
func Export(p *rastreio.Pedido, dir string) (string, error) {
	path := filepath.Join(dir, Filename(p))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("criar arquivo de exportação: %w", err)
	}
	defer f.Close()

	if err := Render(p, f, time.Now()); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// Render writes the PDF document for p to w. geradoEm is the generation
// timestamp printed in the footer.
func Render(p *rastreio.Pedido, w io.Writer, geradoEm time.Time) error {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pageWidth, pageHeight := doc.GetPageSize()
	maxWidth := pageWidth - 2*pageMargin
	y := pageMargin

	line := func() {
		doc.SetDrawColor(200, 200, 200)
		doc.Line(pageMargin, y, pageWidth-pageMargin, y)
		y += 5
	}
	checkNewPage := func(space float64) {
		if y+space > pageHeight-pageMargin {
			doc.AddPage()
			y = pageMargin
		}
	}
	sectionTitle := func(title string) {
		checkNewPage(40)
		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(0, 128, 0)
		doc.Text(pageMargin, y, tr(title))
		y += 8
		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(0, 0, 0)
	}
	field := func(label, value string) {
		doc.SetFont("Helvetica", "B", 10)
		doc.Text(pageMargin, y, tr(label))
		labelWidth := doc.GetStringWidth(tr(label)) + 5
		doc.SetFont("Helvetica", "", 10)
		lines := doc.SplitText(tr(value), maxWidth-labelWidth)
		for i, l := range lines {
			doc.Text(pageMargin+labelWidth, y+float64(i)*6, l)
		}
		if len(lines) > 1 {
			y += float64(len(lines))*6 + 1
		} else {
			y += lineHeight
		}
	}

	// Cabeçalho
	doc.SetFont("Helvetica", "B", 20)
	doc.SetTextColor(0, 128, 0)
	doc.Text(pageMargin, y, tr("RASTREAMENTO DE INSUMOS"))
	y += 12
	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(100, 100, 100)
	doc.Text(pageMargin, y, tr("Acompanhamento de Sementes e Mudas"))
	y += 10
	line()

	sectionTitle("INFORMAÇÕES GERAIS")
	field("Número de Rastreio:", format.Valor(p.Codigo()))
	field("Data da Solicitação:", format.Data(p.DataReferencia()))
	field("Status:", strings.ReplaceAll(format.Valor(p.Status), "_", " "))
	field("Previsão de Despacho:", format.Data(p.PrevisaoDespacho))
	y += 5
	line()

	sectionTitle("DETALHES DO INSUMO")
	field("Cultura Solicitada:", fmt.Sprintf("%s (%s)", format.Valor(p.Cultura), format.Valor(p.Variedade)))
	quantidade := format.NaoInformado
	if p.Quantidade > 0 {
		quantidade = fmt.Sprintf("%d %s", p.Quantidade, format.ValorOu(p.Unidade, "un"))
	}
	field("Quantidade:", quantidade)
	field("Status de Estoque:", format.Valor(p.StatusEstoque))
	y += 5
	line()

	sectionTitle("LOCAL DE RETIRADA / ENTREGA")
	field("Produtor/Destinatário:", format.Valor(p.Destinatario()))
	field("Endereço:", format.Valor(p.Endereco()))
	field("Município:", format.Valor(p.MunicipioResolvido()))
	field("Prazo Final:", format.Data(p.PrazoFinal))
	y += 5
	line()

	if len(p.Etapas) > 0 {
		checkNewPage(50)
		doc.SetFont("Helvetica", "B", 12)
		doc.SetTextColor(0, 128, 0)
		doc.Text(pageMargin, y, tr("ETAPAS DO RASTREAMENTO"))
		y += 8

		for i, etapa := range p.Etapas {
			checkNewPage(15)
			marker := "( )"
			if etapa.Concluida {
				marker = "(x)"
				doc.SetTextColor(0, 128, 0)
			} else {
				doc.SetTextColor(150, 150, 150)
			}
			doc.SetFont("Helvetica", "B", 9)
			doc.Text(pageMargin+5, y, tr(fmt.Sprintf("%d. %s %s", i+1, marker, etapa.Nome)))
			y += 6

			doc.SetTextColor(100, 100, 100)
			doc.SetFont("Helvetica", "", 9)
			desc := doc.SplitText(tr(etapa.Descricao), maxWidth-10)
			for j, l := range desc {
				doc.Text(pageMargin+10, y+float64(j)*5, l)
			}
			y += float64(len(desc))*5 + 3
		}
	}

	// Rodapé
	y += 5
	line()
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(150, 150, 150)
	doc.Text(pageMargin, y, tr(fmt.Sprintf("Documento gerado em: %s às %s",
		geradoEm.Format("02/01/2006"), geradoEm.Format("15:04:05"))))

	return doc.Output(w)
}
