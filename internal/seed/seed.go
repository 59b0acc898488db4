// Package seed fills an empty board with a sample pipeline
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/dealdesk/internal/models"
	dealservice "github.com/thenoetrevino/dealdesk/internal/services/deal"
)

// ErrBoardNotEmpty is returned when seeding would mix samples with real deals
var ErrBoardNotEmpty = errors.New("board already has deals")

// Sample is one seeded deal and the index of the stage it starts in
type Sample struct {
	Stage int
	Deal  dealservice.CreateDealRequest
}

// Samples returns the sample pipeline: two new leads and one deal in each
// of the next three stages
func Samples() []Sample {
	return []Sample{
		{Stage: 0, Deal: dealservice.CreateDealRequest{
			Title: "Website Redesign", Company: "Acme Corp", Amount: "8500",
			Contact: "Alex Johnson", ContactInitials: "AJ", Due: "Aug 28",
		}},
		{Stage: 0, Deal: dealservice.CreateDealRequest{
			Title: "Marketing Campaign", Company: "Globex Inc", Amount: "12000",
			Contact: "Samantha Lee", ContactInitials: "SL", Due: "Sep 15",
		}},
		{Stage: 1, Deal: dealservice.CreateDealRequest{
			Title: "Software Integration", Company: "Initech", Amount: "15800",
			Contact: "David Martinez", ContactInitials: "DM", Due: "Aug 31",
		}},
		{Stage: 2, Deal: dealservice.CreateDealRequest{
			Title: "Annual Contract", Company: "Massive Dynamic", Amount: "24000",
			Contact: "Emily Wong", ContactInitials: "EW", Due: "Sep 8",
		}},
		{Stage: 3, Deal: dealservice.CreateDealRequest{
			Title: "Consulting Project", Company: "Stark Industries", Amount: "9200",
			Contact: "James Wilson", ContactInitials: "JW", Due: "Sep 22",
		}},
	}
}

// Load adds the samples to an empty board. Stage indexes past the end of a
// shorter pipeline land in its last stage.
func Load(ctx context.Context, svc dealservice.Service) ([]models.Deal, error) {
	b := svc.Board()
	if len(b.Deals) > 0 {
		return nil, ErrBoardNotEmpty
	}
	if len(b.Stages) == 0 {
		return nil, errors.New("board has no stages")
	}

	created := make([]models.Deal, 0, len(Samples()))
	for _, s := range Samples() {
		req := s.Deal
		req.StageID = b.Stages[min(s.Stage, len(b.Stages)-1)].ID

		d, err := svc.AddDeal(ctx, req)
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", req.Title, err)
		}
		slog.Info("seeded deal", "deal_id", d.ID, "title", d.Title, "stage", req.StageID)
		created = append(created, *d)
	}
	return created, nil
}
