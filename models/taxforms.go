package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// TaxParty identifies one side of a tax form (employee/employer on the W-2,
// borrower/lender on the 1098).
type TaxParty struct {
	Name   string `json:"name"`
	TIN    string `json:"tin"` // SSN or EIN depending on the party
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// W2Box12 is one lettered box-12 entry (code plus amount)
type W2Box12 struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

// W2Record is the current W-2 extraction snapshot stored in User.Income.
// One snapshot per user; re-extraction overwrites it wholesale, partial
// updates merge over it.
type W2Record struct {
	Employee TaxParty `json:"employee"`
	Employer TaxParty `json:"employer"`

	Wages                 float64   `json:"wages"`                 // box 1
	FederalTaxWithheld    float64   `json:"federalTaxWithheld"`    // box 2
	SocialSecurityWages   float64   `json:"socialSecurityWages"`   // box 3
	SocialSecurityTax     float64   `json:"socialSecurityTax"`     // box 4
	MedicareWages         float64   `json:"medicareWages"`         // box 5
	MedicareTax           float64   `json:"medicareTax"`           // box 6
	SocialSecurityTips    float64   `json:"socialSecurityTips"`    // box 7
	AllocatedTips         float64   `json:"allocatedTips"`         // box 8
	DependentCareBenefits float64   `json:"dependentCareBenefits"` // box 10
	NonqualifiedPlans     float64   `json:"nonqualifiedPlans"`     // box 11
	Box12                 []W2Box12 `json:"box12"`
	StatutoryEmployee     bool      `json:"statutoryEmployee"` // box 13
	RetirementPlan        bool      `json:"retirementPlan"`    // box 13
	ThirdPartySickPay     bool      `json:"thirdPartySickPay"` // box 13
	Other                 string    `json:"other"`             // box 14

	TaxableIncome    float64 `json:"taxableIncome"`
	TotalTaxWithheld float64 `json:"totalTaxWithheld"`
	NetPay           float64 `json:"netPay"`

	ExtractedAt      time.Time  `json:"extractedAt"`
	ExtractionMethod string     `json:"extractionMethod"`
	Confidence       float64    `json:"confidence"`
	LastModified     *time.Time `json:"lastModified,omitempty"`
}

// CalculationBasis notes which income figure and rate produced the 1098 boxes
type CalculationBasis struct {
	SourceIncome float64 `json:"sourceIncome"`
	AssumedRate  float64 `json:"assumedRate"`
	Method       string  `json:"method"`
}

// Form1098 is the mortgage-interest record stored in User.Deductions
type Form1098 struct {
	Borrower TaxParty `json:"borrower"`
	Lender   TaxParty `json:"lender"`

	MortgageInterestReceived     float64 `json:"mortgageInterestReceived"`     // box 1
	OutstandingMortgagePrincipal float64 `json:"outstandingMortgagePrincipal"` // box 2
	RefundOverpaidInterest       float64 `json:"refundOverpaidInterest"`       // box 4
	MortgageInsurancePremiums    float64 `json:"mortgageInsurancePremiums"`    // box 5
	PointsPaid                   float64 `json:"pointsPaid"`                   // box 6

	PropertyAddress string `json:"propertyAddress"`

	FormYear      int        `json:"formYear"`
	GeneratedDate time.Time  `json:"generatedDate"`
	AccountNumber string     `json:"accountNumber"`
	LastModified  *time.Time `json:"lastModified,omitempty"`

	CalculationBasis CalculationBasis `json:"calculationBasis"`
}

// CurrentW2 decodes the stored W-2 snapshot; ok is false when none exists
func (u *User) CurrentW2() (*W2Record, bool) {
	if !hasBlob(u.Income) {
		return nil, false
	}
	var rec W2Record
	if err := json.Unmarshal(u.Income, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// SetCurrentW2 stores rec as the user's income snapshot
func (u *User) SetCurrentW2(rec *W2Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	u.Income = datatypes.JSON(raw)
	return nil
}

// Current1098 decodes the stored 1098 record; ok is false when none exists
func (u *User) Current1098() (*Form1098, bool) {
	if !hasBlob(u.Deductions) {
		return nil, false
	}
	var rec Form1098
	if err := json.Unmarshal(u.Deductions, &rec); err != nil {
		return nil, false
	}
	return &rec, true
}

// SetCurrent1098 stores rec as the user's deductions snapshot
func (u *User) SetCurrent1098(rec *Form1098) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	u.Deductions = datatypes.JSON(raw)
	return nil
}

func hasBlob(blob datatypes.JSON) bool {
	return len(blob) > 0 && string(blob) != "null" && string(blob) != "{}"
}
