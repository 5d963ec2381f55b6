package service

import (
	"context"
	"sort"
	"time"

	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation"
	"github.com/bloodbank/bloodbank/backend/go-services/internal/donation/repository"
	"github.com/bloodbank/bloodbank/backend/go-services/pkg/metrics"
)

const (
	// recentWindow is an exact 7x24h duration, not a calendar week.
	recentWindow = 7 * 24 * time.Hour
	recentLimit  = 10

	eligibleMessage   = "Thanks for filling data. You are eligible to donate!"
	ineligibleMessage = "You aren't eligible to give blood."
)

// Submission is a validated donation form: fields present and numerics parsed.
type Submission struct {
	DonorName  string
	Age        int
	Gender     string
	BloodGroup string
	Weight     float64
}

// Result is the intake outcome. Ineligibility is a normal result, not an error.
type Result struct {
	Success    bool   `json:"success"`
	IsEligible bool   `json:"isEligible"`
	Message    string `json:"message"`
}

// Stats are aggregate donation counts derived from a full prefix scan.
type Stats struct {
	TotalDonations int `json:"totalDonations"`
	AllDonations   int `json:"allDonations"`
}

// DonorView is the public projection of a donation record.
type DonorView struct {
	DonorName  string    `json:"donorName"`
	BloodGroup string    `json:"bloodGroup"`
	Timestamp  time.Time `json:"timestamp"`
	Age        int       `json:"age"`
	Gender     string    `json:"gender"`
}

// Service defines the donation business operations used by the handler layer.
type Service interface {
	Submit(ctx context.Context, userID, userEmail string, sub Submission) (*Result, error)
	Stats(ctx context.Context) (*Stats, error)
	RecentDonors(ctx context.Context) ([]DonorView, error)
}

func New(repo repository.Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.Repository
}

// Submit evaluates eligibility and persists the record on the eligible path
// only. The verdict is computed once, at write time, and never recomputed.
func (s *service) Submit(ctx context.Context, userID, userEmail string, sub Submission) (*Result, error) {
	eligible := donation.Eligible(sub.Age, sub.Weight)

	rec := &donation.Record{
		UserID:     userID,
		UserEmail:  userEmail,
		DonorName:  sub.DonorName,
		Age:        sub.Age,
		Gender:     sub.Gender,
		BloodGroup: sub.BloodGroup,
		Weight:     sub.Weight,
		IsEligible: eligible,
		Timestamp:  time.Now().UTC(),
	}

	if eligible {
		if err := s.repo.Save(ctx, rec); err != nil {
			metrics.DonationStoreErrors.Inc()
			return nil, err
		}
		metrics.DonationsSubmitted.WithLabelValues("eligible").Inc()
		return &Result{Success: true, IsEligible: true, Message: eligibleMessage}, nil
	}

	metrics.DonationsSubmitted.WithLabelValues("ineligible").Inc()
	return &Result{Success: true, IsEligible: false, Message: ineligibleMessage}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	eligible := 0
	for _, r := range recs {
		if r.IsEligible {
			eligible++
		}
	}
	return &Stats{TotalDonations: eligible, AllDonations: len(recs)}, nil
}

// RecentDonors returns up to 10 eligible donations from the trailing week,
// most recent first. The eligibility filter is applied even though the write
// path only stores eligible records, so a future write path that persists
// ineligible submissions cannot leak them here.
func (s *service) RecentDonors(ctx context.Context) ([]DonorView, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(-recentWindow)
	kept := make([]*donation.Record, 0, len(recs))
	for _, r := range recs {
		if r.IsEligible && !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Timestamp.After(kept[j].Timestamp)
	})
	if len(kept) > recentLimit {
		kept = kept[:recentLimit]
	}

	out := make([]DonorView, 0, len(kept))
	for _, r := range kept {
		out = append(out, DonorView{
			DonorName:  r.DonorName,
			BloodGroup: r.BloodGroup,
			Timestamp:  r.Timestamp,
			Age:        r.Age,
			Gender:     r.Gender,
		})
	}
	return out, nil
}
