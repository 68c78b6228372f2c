package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/testutil"
)

// TestPortfolioService_Reads tests the portfolio read operations.
func TestPortfolioService_Reads(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	if got := len(svc.GetAssets()); got != 4 {
		t.Errorf("Expected 4 assets, got %d", got)
	}
	if got := svc.GetKPIs().RiskLevel; got != model.RiskLevelMedium {
		t.Errorf("Expected Medium risk, got %s", got)
	}
	nav := svc.GetNavHistory()
	if nav[len(nav)-1].Date != "2025-03-14" {
		t.Errorf("Expected last NAV point today, got %s", nav[len(nav)-1].Date)
	}

	txs := svc.GetTransactions()
	if len(txs) != 2 || txs[0].ID != "t2" {
		t.Errorf("Expected newest transaction first, got %+v", txs)
	}
}

// TestPortfolioService_WriteTransactionsCSV tests the transaction report.
//
// WHY: The CSV is consumed by spreadsheets and accounting tools, so the header, date
// format and money precision are a contract.
func TestPortfolioService_WriteTransactionsCSV(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)
	var buf bytes.Buffer

	// Execute
	if err := svc.WriteTransactionsCSV(&buf); err != nil {
		t.Fatalf("WriteTransactionsCSV() returned unexpected error: %v", err)
	}

	// Assert
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Report is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d records", len(records))
	}
	wantHeader := []string{"id", "date", "type", "asset", "amount", "valueUSD"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("Header column %d = %q, want %q", i, records[0][i], h)
		}
	}

	yield := records[1]
	wantDate := testutil.FixedNow.Add(-time.Hour).Format(time.RFC3339)
	if yield[0] != "t2" || yield[1] != wantDate || yield[2] != "YIELD" || yield[5] != "500.00" {
		t.Errorf("Unexpected first row %v", yield)
	}
	buy := records[2]
	if buy[0] != "t1" || buy[4] != "10" || buy[5] != "30000.00" {
		t.Errorf("Unexpected second row %v", buy)
	}
}

func TestPortfolioService_Optimize(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db, nil)
	ctx := context.Background()
	rt := 10
	if _, err := svcs.Config.UpdateAgentConfig(ctx, request.UpdateAgentConfigRequest{RiskTolerance: &rt}); err != nil {
		t.Fatalf("UpdateAgentConfig() returned unexpected error: %v", err)
	}

	target, err := svcs.Portfolio.Optimize(ctx)

	if err != nil {
		t.Fatalf("Optimize() returned unexpected error: %v", err)
	}
	var sum float64
	for _, w := range target {
		sum += w
	}
	if sum < 99.999 || sum > 100.001 {
		t.Errorf("Expected weights to sum to 100, got %v", sum)
	}
	if target["ETH"] <= target["USDC"] {
		t.Errorf("Expected ETH to outweigh stables at maximum tolerance, got %v", target)
	}
	if insights := svcs.Intelligence.GetLists().Insights; len(insights) != 1 || insights[0].Type != model.InsightOptimization {
		t.Errorf("Expected one optimization insight, got %+v", insights)
	}
}

func TestPortfolioService_State(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svcs := testutil.NewTestServices(t, db, nil)
	deadline := testutil.FixedNow.Add(-time.Hour).UnixMilli()
	if _, err := svcs.Governance.CreateProposal(context.Background(), request.CreateProposalRequest{
		Title:    "Expired",
		Type:     string(model.ProposalPolicyChange),
		Deadline: &deadline,
	}); err != nil {
		t.Fatalf("CreateProposal() returned unexpected error: %v", err)
	}

	state := svcs.Portfolio.State()

	if state.GovernanceProposals[0].Status != model.ProposalRejected {
		t.Errorf("Expected derived REJECTED status, got %s", state.GovernanceProposals[0].Status)
	}
	if svcs.Store.Snapshot().GovernanceProposals[0].Status != model.ProposalActive {
		t.Error("Expected stored status to stay ACTIVE")
	}
}
