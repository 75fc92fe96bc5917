package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Generator renders printable doctor profile cards.
type Generator interface {
	GenerateProfileCard(data ProfileCardData) (string, error)
}

type CardGenerator struct {
	RootDir string // where generated cards land, e.g. "./files"
}

type ProfileCardData struct {
	FirstName   string
	LastName    string
	Specialty   string
	Location    string
	Email       string
	PhoneNumber string
	SecondPhone string
	MemberSince time.Time
	Filename    string // optional; derived from the name when empty
}

func NewCardGenerator(rootDir string) *CardGenerator {
	return &CardGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *CardGenerator) GenerateProfileCard(data ProfileCardData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("profile_%s_%s.pdf", data.FirstName, data.LastName)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Dr. %s %s", data.FirstName, data.LastName), false)
	pdf.SetAuthor("VitaDoc", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, fmt.Sprintf("Dr. %s %s", data.FirstName, data.LastName), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, data.Specialty, "", 1, "C", false, 0, "")
	g.hr(pdf)

	row := func(label, value string) {
		if value == "" {
			return
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(40, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	row("Location", data.Location)
	row("Email", data.Email)
	row("Phone", data.PhoneNumber)
	row("Alt. phone", data.SecondPhone)
	if !data.MemberSince.IsZero() {
		row("Member since", data.MemberSince.Format("02.01.2006"))
	}

	g.hr(pdf)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated by VitaDoc", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return absPath, nil
}

func (g *CardGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	// keep the name inside RootDir
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *CardGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
