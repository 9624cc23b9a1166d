package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"bizchess/internal/domain/analysis"
	"bizchess/internal/domain/board"
)

const (
	margin     = 15.0
	squareSize = 12.0
)

var abbreviations = map[string]string{
	"CEO":     "CEO",
	"CFO":     "CFO",
	"CTO":     "CTO",
	"CMO":     "CMO",
	"VP":      "VP",
	"MANAGER": "MGR",
}

// WriteAnalysisPDF renders a one-page report of an analysis: the board with
// the recommended move highlighted, followed by the move scores and the
// position evaluation.
func WriteAnalysisPDF(w io.Writer, a analysis.Analysis) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Strategy analysis "+a.ID, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Strategy analysis")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("id %s   created %s   ply %d   %s to move",
		a.ID, a.CreatedAt.Format("2006-01-02 15:04 MST"), a.Board.Ply, a.Board.Turn))
	pdf.Ln(10)

	top := pdf.GetY()
	drawBoard(pdf, a.Board, a.Result.Move, margin, top)
	pdf.SetXY(margin, top+board.Size*squareSize+8)

	drawResult(pdf, a.Result)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return pdf.Output(w)
}

func drawBoard(pdf *gofpdf.Fpdf, snap board.Snapshot, mv board.MoveView, left, top float64) {
	pdf.SetFont("Helvetica", "B", 7)
	pdf.SetDrawColor(90, 90, 90)
	for y := 0; y < board.Size; y++ {
		for x := 0; x < board.Size; x++ {
			pos := board.NewPosition(x, y)
			switch {
			case pos == mv.From:
				pdf.SetFillColor(255, 236, 179)
			case pos == mv.To:
				pdf.SetFillColor(255, 204, 128)
			case (x+y)%2 == 0:
				pdf.SetFillColor(245, 245, 245)
			default:
				pdf.SetFillColor(200, 210, 220)
			}
			pdf.SetXY(left+float64(x)*squareSize, top+float64(y)*squareSize)

			label := ""
			if y < len(snap.Board) && x < len(snap.Board[y]) {
				if cell := snap.Board[y][x]; cell != nil {
					label = pieceLabel(*cell)
					if cell.Side == board.Company.String() {
						pdf.SetTextColor(20, 60, 140)
					} else {
						pdf.SetTextColor(170, 30, 30)
					}
				}
			}
			pdf.CellFormat(squareSize, squareSize, label, "1", 0, "CM", true, 0, "")
		}
	}
	pdf.SetTextColor(0, 0, 0)
}

func drawResult(pdf *gofpdf.Fpdf, r analysis.Result) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Recommended move")
	pdf.Ln(8)

	rows := [][2]string{
		{"Move", moveLabel(r.Move)},
		{"Strategic value", fmt.Sprintf("%.3f", r.Move.StrategicValue)},
		{"Risk score", fmt.Sprintf("%.3f", r.Move.RiskScore)},
		{"Expected return", fmt.Sprintf("%.3f", r.Move.ExpectedReturn)},
		{"Search score", fmt.Sprintf("%.3f", r.Score)},
		{"Depth", searchDepth(r)},
		{"Nodes / cut-offs", fmt.Sprintf("%d / %d", r.Stats.Nodes, r.Stats.Cutoffs)},
		{"Evaluation", fmt.Sprintf("material %.1f  positional %.2f  strategic %.2f",
			r.Evaluation.Material, r.Evaluation.Positional, r.Evaluation.Strategic)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.SetX(margin)
		pdf.CellFormat(45, 7, row[0], "B", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "B", 1, "L", false, 0, "")
	}
}

func pieceLabel(v board.PieceView) string {
	if short, ok := abbreviations[v.Archetype]; ok {
		return short
	}
	return v.Archetype
}

func moveLabel(m board.MoveView) string {
	label := fmt.Sprintf("%s %s %s -> %s", m.Side, m.Piece, m.From, m.To)
	if m.Captured != "" {
		label += " takes " + m.Captured
	}
	return label
}

func searchDepth(r analysis.Result) string {
	switch {
	case r.TimedOut:
		return fmt.Sprintf("%d (stopped by deadline)", r.Depth)
	case r.Fallback:
		return fmt.Sprintf("%d (strategic fallback)", r.Depth)
	}
	return fmt.Sprintf("%d", r.Depth)
}
