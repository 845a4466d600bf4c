package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asingla/credscope/internal/core/domain"
)

func oracleResponse(inner string) string {
	payload := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": inner}}}},
		},
	}
	b, _ := json.Marshal(payload)
	return string(b)
}

func TestScoreVerifiedSendsDatasetJSONOnly(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt = payload.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(oracleResponse(`{"income_stability_score": 8, "spending_discipline_score": 7, "savings_behavior_score": 6, "payment_discipline_score": 9, "digital_behavior_score": 5, "lifestyle_stability_score": 7, "behavior_score": 7.3, "explanation": "ok"}`)))
	}))
	defer server.Close()

	avg := 52000.0
	client := New(server.URL, "scoring-model", "key", 0)
	got, err := client.ScoreVerified(context.Background(), &domain.VerifiedDataset{
		Bank: &domain.BankSection{TotalIncome: 156000, AvgMonthlyIncome: &avg},
	})
	if err != nil {
		t.Fatalf("ScoreVerified() error = %v", err)
	}
	if got.Aggregate != 7.3 || got.PaymentDiscipline != 9 {
		t.Fatalf("unexpected score: %+v", got)
	}
	if !strings.Contains(capturedPrompt, `"avg_monthly_income": 52000`) {
		t.Fatalf("dataset JSON missing from prompt: %s", capturedPrompt)
	}
	if !strings.Contains(capturedPrompt, "ONLY the JSON data provided") {
		t.Fatalf("grounding rules missing from prompt: %s", capturedPrompt)
	}
}

func TestScoreSelfReportedIncludesParsedUPIMetrics(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt = payload.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(oracleResponse(`{"income_stability_score": 6, "spending_discipline_score": 6, "savings_behavior_score": 6, "payment_discipline_score": 6, "digital_behavior_score": 8, "lifestyle_stability_score": 6, "behavior_score": 6.2, "explanation": "ok"}`)))
	}))
	defer server.Close()

	client := New(server.URL, "scoring-model", "key", 0)
	answers := domain.SurveyAnswers{
		EmploymentType: "salaried",
		MonthlyIncome:  45000,
		UPI: &domain.UPIMetrics{
			TransactionCount:     42,
			TotalSpend:           9800,
			DigitalBehaviorIndex: 6.3,
		},
	}
	got, err := client.ScoreSelfReported(context.Background(), answers)
	if err != nil {
		t.Fatalf("ScoreSelfReported() error = %v", err)
	}
	if got.DigitalBehavior != 8 {
		t.Fatalf("unexpected score: %+v", got)
	}
	if !strings.Contains(capturedPrompt, `"digital_behavior_index": 6.3`) {
		t.Fatalf("UPI metrics missing from prompt: %s", capturedPrompt)
	}
	if !strings.Contains(capturedPrompt, "parsed from an uploaded UPI transaction ledger") {
		t.Fatalf("UPI weighting note missing from prompt: %s", capturedPrompt)
	}
}

func TestScoreSelfReportedOmitsUPINoteWithoutMetrics(t *testing.T) {
	var capturedPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload generateRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		capturedPrompt = payload.Contents[0].Parts[0].Text
		_, _ = w.Write([]byte(oracleResponse(`{"behavior_score": 5, "income_stability_score": 5, "spending_discipline_score": 5, "savings_behavior_score": 5, "payment_discipline_score": 5, "digital_behavior_score": 5, "lifestyle_stability_score": 5, "explanation": "ok"}`)))
	}))
	defer server.Close()

	client := New(server.URL, "scoring-model", "key", 0)
	if _, err := client.ScoreSelfReported(context.Background(), domain.SurveyAnswers{MonthlyIncome: 30000}); err != nil {
		t.Fatalf("ScoreSelfReported() error = %v", err)
	}
	if strings.Contains(capturedPrompt, "upi_metrics") || strings.Contains(capturedPrompt, "transaction ledger") {
		t.Fatalf("unexpected UPI content in prompt: %s", capturedPrompt)
	}
}

func TestScoreVerifiedReturnsStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := New(server.URL, "scoring-model", "key", 0)
	_, err := client.ScoreVerified(context.Background(), &domain.VerifiedDataset{})
	if err == nil {
		t.Fatal("expected error")
	}
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected response body in error, got %v", err)
	}
}

func TestScoreVerifiedRejectsEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	client := New(server.URL, "scoring-model", "key", 0)
	if _, err := client.ScoreVerified(context.Background(), &domain.VerifiedDataset{}); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}
