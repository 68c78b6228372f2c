package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/api/request"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/apperrors"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/model"
	"github.com/ndewijer/DAO-Treasury-Manager-Backend/internal/testutil"
)

// TestGovernanceService_CreateProposal tests opening proposals.
func TestGovernanceService_CreateProposal(t *testing.T) {
	// Setup
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestGovernanceService(t, db)
	title := testutil.MakeProposalTitle("Raise stables")

	// Execute
	p, err := svc.CreateProposal(context.Background(), request.CreateProposalRequest{
		Title: title,
		Type:  string(model.ProposalPolicyChange),
	})

	// Assert
	if err != nil {
		t.Fatalf("CreateProposal() returned unexpected error: %v", err)
	}
	if p.ID == "" || p.Status != model.ProposalActive {
		t.Errorf("Expected new ACTIVE proposal with an id, got %+v", p)
	}
	if want := testutil.FixedNow.Add(7 * 24 * time.Hour).UnixMilli(); p.Deadline != want {
		t.Errorf("Expected default deadline %d, got %d", want, p.Deadline)
	}
	if got := svc.ListProposals(); len(got) != 1 || got[0].Title != title {
		t.Errorf("Expected proposal to be listed, got %+v", got)
	}
	if _, ok := testutil.FindLog(testutil.ActivityLogs(t, db), model.LogCategoryGovernance, "Proposal created: "+title); !ok {
		t.Error("Expected activity entry for the new proposal")
	}
}

// TestGovernanceService_Vote tests voting and its error paths.
//
// WHY: The handler maps these errors to 404 and 409, so the sentinels must survive the
// wrapping done by the service.
func TestGovernanceService_Vote(t *testing.T) {
	t.Run("default power is added to the chosen side", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGovernanceService(t, db)
		p, err := svc.CreateProposal(context.Background(), request.CreateProposalRequest{Title: "Vote me", Type: string(model.ProposalRebalance)})
		if err != nil {
			t.Fatalf("CreateProposal() returned unexpected error: %v", err)
		}

		got, err := svc.Vote(context.Background(), p.ID, request.VoteRequest{Choice: "against"})

		if err != nil {
			t.Fatalf("Vote() returned unexpected error: %v", err)
		}
		if got.Votes.Against != 10 || got.Votes.For != 0 {
			t.Errorf("Expected 10 votes against, got for=%v against=%v", got.Votes.For, got.Votes.Against)
		}
	})

	t.Run("unknown proposal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGovernanceService(t, db)

		_, err := svc.Vote(context.Background(), testutil.MakeID(), request.VoteRequest{Choice: "for"})

		if !errors.Is(err, apperrors.ErrProposalNotFound) {
			t.Errorf("Expected ErrProposalNotFound, got %v", err)
		}
	})

	t.Run("expired proposal is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestGovernanceService(t, db)
		deadline := testutil.FixedNow.Add(-time.Minute).UnixMilli()
		p, err := svc.CreateProposal(context.Background(), request.CreateProposalRequest{
			Title:    "Too late",
			Type:     string(model.ProposalEmergencyAction),
			Deadline: &deadline,
		})
		if err != nil {
			t.Fatalf("CreateProposal() returned unexpected error: %v", err)
		}

		_, err = svc.Vote(context.Background(), p.ID, request.VoteRequest{Choice: "for"})

		if !errors.Is(err, apperrors.ErrProposalClosed) {
			t.Errorf("Expected ErrProposalClosed, got %v", err)
		}
	})
}
