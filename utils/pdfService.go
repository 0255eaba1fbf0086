package utils

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"taxprep/models"
)

// RenderForm1098PDF lays out the 1098 estimate as a letter-size PDF and
// returns the document bytes. Rendering is pure: it reads only the stored
// form snapshot, so repeated downloads produce the same document.
func RenderForm1098PDF(form *models.Form1098) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetTitle(fmt.Sprintf("Form 1098 (%d)", form.FormYear), false)
	pdf.SetCreationDate(form.GeneratedDate)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "Form 1098", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 7, "Mortgage Interest Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Tax Year %d", form.FormYear), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeParty(pdf, "RECIPIENT/LENDER", form.Lender)
	pdf.Ln(2)
	writeParty(pdf, "PAYER/BORROWER", form.Borrower)
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, "PROPERTY SECURING MORTGAGE", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, form.PropertyAddress, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeBox(pdf, "1", "Mortgage interest received from payer(s)/borrower(s)", form.MortgageInterestReceived)
	writeBox(pdf, "2", "Outstanding mortgage principal", form.OutstandingMortgagePrincipal)
	writeBox(pdf, "4", "Refund of overpaid interest", form.RefundOverpaidInterest)
	writeBox(pdf, "5", "Mortgage insurance premiums", form.MortgageInsurancePremiums)
	writeBox(pdf, "6", "Points paid on purchase of principal residence", form.PointsPaid)
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Account number: %s", form.AccountNumber), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", form.GeneratedDate.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, "This statement is an estimate derived from reported wage income. "+
		"It is not a substitute for the Form 1098 issued by your mortgage lender. "+
		"Verify all amounts against your lender's records before filing.", "", "L", false)

	// Basis appendix
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Calculation Basis", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 10)
	basis := form.CalculationBasis
	writeBasisLine(pdf, "Method", basis.Method)
	writeBasisLine(pdf, "Source income (W-2 wages)", FormatCurrency(basis.SourceIncome))
	writeBasisLine(pdf, "Assumed annual interest rate", fmt.Sprintf("%.2f%%", basis.AssumedRate*100))
	writeBasisLine(pdf, "Interest cap applied at", FormatCurrency(mortgageInterestCap))
	writeBasisLine(pdf, "Insurance premium rate", fmt.Sprintf("%.2f%%", insurancePremiumRate*100))
	writeBasisLine(pdf, "Principal multiple of wages", fmt.Sprintf("%.1fx", outstandingPrincipalMx))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render 1098 PDF: %v", err)
	}
	return buf.Bytes(), nil
}

func writeParty(pdf *gofpdf.Fpdf, label string, p models.TaxParty) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, label, "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 5, p.Name, "", 1, "L", false, 0, "")
	if p.TIN != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("TIN: %s", p.TIN), "", 1, "L", false, 0, "")
	}
	if p.Street != "" {
		pdf.CellFormat(0, 5, p.Street, "", 1, "L", false, 0, "")
	}
	if p.City != "" || p.State != "" || p.Zip != "" {
		pdf.CellFormat(0, 5, fmt.Sprintf("%s, %s %s", p.City, p.State, p.Zip), "", 1, "L", false, 0, "")
	}
}

func writeBox(pdf *gofpdf.Fpdf, number, label string, amount float64) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(12, 8, number, "1", 0, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(130, 8, label, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 8, FormatCurrency(amount), "1", 1, "R", false, 0, "")
}

func writeBasisLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(70, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}
