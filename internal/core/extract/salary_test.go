package extract

import "testing"

func TestExtractSalarySlip(t *testing.T) {
	text := "Employee Name: Ravi Kumar\n" +
		"Emp ID: EMP12345\n" +
		"For the month of March 2024\n" +
		"Gross Salary: ₹ 65,000.00\n" +
		"Total Deductions: 8,000.00\n" +
		"Net Pay: 57,000.00"

	m := ExtractSalary(text)
	if m.Err != "" {
		t.Fatalf("unexpected extraction error: %s", m.Err)
	}
	if m.GrossSalary == nil || *m.GrossSalary != 65000 {
		t.Fatalf("expected gross 65000, got %v", m.GrossSalary)
	}
	if m.NetSalary == nil || *m.NetSalary != 57000 {
		t.Fatalf("expected net 57000, got %v", m.NetSalary)
	}
	if m.TotalDeductions != 8000 {
		t.Fatalf("expected deductions 8000, got %v", m.TotalDeductions)
	}
	if m.EmployeeID != "EMP12345" {
		t.Fatalf("expected employee id EMP12345, got %q", m.EmployeeID)
	}
	if m.EmployeeName != "Ravi Kumar" {
		t.Fatalf("expected employee name Ravi Kumar, got %q", m.EmployeeName)
	}
	if m.SalaryMonth != "March" || m.SalaryYear != "2024" {
		t.Fatalf("expected March 2024, got %q %q", m.SalaryMonth, m.SalaryYear)
	}
	if !m.IsRegular {
		t.Fatalf("expected regular salary with month mention and gross figure")
	}
}

func TestExtractSalaryNetFallsBackToGrossMinusDeductions(t *testing.T) {
	m := ExtractSalary("Gross Salary: 40,000.00\nDeduction: 5,000.00")
	if m.NetSalary == nil || *m.NetSalary != 35000 {
		t.Fatalf("expected derived net 35000, got %v", m.NetSalary)
	}
}

func TestExtractSalaryRejectsImplausibleFigures(t *testing.T) {
	m := ExtractSalary("Gross Salary: 500.00")
	if m.GrossSalary != nil {
		t.Fatalf("expected sub-floor gross to be rejected, got %v", *m.GrossSalary)
	}
	if m.IsRegular {
		t.Fatalf("no gross figure means not regular")
	}
}
