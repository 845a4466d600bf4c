package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/asingla/credscope/internal/core/domain"
)

const responseFormat = `Respond ONLY with valid JSON in this exact format:
{
  "income_stability_score": <number 0-10>,
  "spending_discipline_score": <number 0-10>,
  "savings_behavior_score": <number 0-10>,
  "payment_discipline_score": <number 0-10>,
  "digital_behavior_score": <number 0-10>,
  "lifestyle_stability_score": <number 0-10>,
  "behavior_score": <number 0-10>,
  "explanation": "<3-4 bullet points explaining the score based on data>",
  "key_insights": {
    "positive": ["<what increased the score>", "<another positive>"],
    "negative": ["<what reduced the score>", "<another negative>"]
  },
  "red_flags": ["<any concerning patterns from data>"],
  "improvement_tips": ["<tip 1>", "<tip 2>", "<tip 3>"]
}`

func buildVerifiedPrompt(ds *domain.VerifiedDataset) (string, error) {
	payload, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}

	return fmt.Sprintf(`You are a financial behavior analyst. Calculate verified behavioral scores based ONLY on the structured JSON data provided below.

IMPORTANT RULES:
1. Use ONLY the JSON data provided. Do NOT hallucinate or invent fields.
2. If a field is missing or null, do NOT assume a value - use null or 0.
3. Base scores ONLY on verified document data - no assumptions.
4. Return valid JSON in the exact format specified.

Structured Financial Dataset:
%s

Calculate the following scores (each on a scale of 0-10) based ONLY on the provided data:

1. income_stability_score
   - Use: bank.avg_monthly_income, salary.gross_salary, bank.salary_credits
   - Higher if: consistent income, regular salary credits, stable employment

2. spending_discipline_score
   - Use: bank.total_expenses, bank.largest_expense, bank.savings_estimate
   - Higher if: controlled spending, reasonable expenses vs income, good savings

3. savings_behavior_score
   - Use: bank.savings_estimate, bank.avg_balance, bank.total_income vs bank.total_expenses
   - Higher if: positive savings, healthy balance, income > expenses

4. payment_discipline_score
   - Use: credit_bureau.late_payments, bank.late_fees, bank.negative_balance, credit_bureau.credit_utilization
   - Higher if: no late payments, no fees, no negative balance, low utilization

5. digital_behavior_score
   - Use: upi.digital_behavior_index, upi.upi_bill_payments, upi.regularity_per_day
   - Higher if: active digital usage, regular bill payments, consistent transactions

6. lifestyle_stability_score
   - Use: bank.emi_payments, upi.regularity_per_day, credit_bureau.open_loans
   - Higher if: manageable EMIs, regular transaction patterns, stable loan portfolio

Then calculate final behavior_score (0-10) as weighted average:
- income_stability: 15%%
- spending_discipline: 20%%
- savings_behavior: 20%%
- payment_discipline: 25%%
- digital_behavior: 10%%
- lifestyle_stability: 10%%

%s`, payload, responseFormat), nil
}

func buildSelfReportedPrompt(answers domain.SurveyAnswers) (string, error) {
	payload, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal survey answers: %w", err)
	}

	upiNote := ""
	if answers.UPI != nil {
		upiNote = "\nThe upi_metrics block was parsed from an uploaded UPI transaction ledger. Treat it as verified and weight it for digital_behavior_score and lifestyle_stability_score; every other figure is self-reported.\n"
	}

	return fmt.Sprintf(`You are a financial behavior analyst. Estimate behavioral scores from the SELF-REPORTED survey answers below. None of these figures are verified against documents, so be conservative and mention the lack of verification in the explanation.

Survey Answers:
%s
%s
Score each category on a scale of 0-10: income_stability_score, spending_discipline_score, savings_behavior_score, payment_discipline_score, digital_behavior_score, lifestyle_stability_score. Then calculate final behavior_score (0-10) as weighted average:
- income_stability: 15%%
- spending_discipline: 20%%
- savings_behavior: 20%%
- payment_discipline: 25%%
- digital_behavior: 10%%
- lifestyle_stability: 10%%

%s`, payload, upiNote, responseFormat), nil
}
