package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/MarufHossain14/clubops-crm/internal/domain"
)

// Directory services: RSVPs, members, orgs ("teams"), and sponsors. These are
// thin read-mostly surfaces over their repositories.

type rsvpService struct {
	rsvpRepo       domain.RSVPRepository
	contextTimeout time.Duration
}

// NewRSVPService returns the RSVP listing service.
func NewRSVPService(rsvpRepo domain.RSVPRepository, timeout time.Duration) domain.RSVPService {
	return &rsvpService{rsvpRepo: rsvpRepo, contextTimeout: timeout}
}

func (s *rsvpService) ListRSVPs(ctx context.Context, eventID *int) ([]*domain.RSVP, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		rsvps []*domain.RSVP
		err   error
	)
	if eventID != nil {
		rsvps, err = s.rsvpRepo.ListByEvent(ctx, *eventID)
	} else {
		rsvps, err = s.rsvpRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	if rsvps == nil {
		rsvps = []*domain.RSVP{}
	}
	return rsvps, nil
}

type memberService struct {
	memberRepo     domain.MemberRepository
	contextTimeout time.Duration
}

// NewMemberService returns the member directory service.
func NewMemberService(memberRepo domain.MemberRepository, timeout time.Duration) domain.MemberService {
	return &memberService{memberRepo: memberRepo, contextTimeout: timeout}
}

func (s *memberService) ListMembers(ctx context.Context) ([]*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.Member{}
	}
	return members, nil
}

func (s *memberService) GetMember(ctx context.Context, memberID int) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFoundError("member not found")
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *memberService) CreateMember(ctx context.Context, member *domain.Member) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	member.Email = strings.TrimSpace(strings.ToLower(member.Email))
	if member.FullName == "" {
		return domain.NewValidationError("fullName is required")
	}
	if _, err := mail.ParseAddress(member.Email); err != nil {
		return domain.NewValidationError("invalid email format")
	}
	if member.OrgID <= 0 {
		return domain.NewValidationError("orgId is required")
	}
	if member.Tags == nil {
		member.Tags = []string{}
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

type orgService struct {
	orgRepo        domain.OrgRepository
	contextTimeout time.Duration
}

// NewOrgService returns the org ("teams") directory service.
func NewOrgService(orgRepo domain.OrgRepository, timeout time.Duration) domain.OrgService {
	return &orgService{orgRepo: orgRepo, contextTimeout: timeout}
}

func (s *orgService) ListOrgs(ctx context.Context) ([]*domain.Org, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	orgs, err := s.orgRepo.ListWithRelations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orgs: %w", err)
	}
	if orgs == nil {
		orgs = []*domain.Org{}
	}
	return orgs, nil
}

type sponsorService struct {
	sponsorRepo    domain.SponsorRepository
	contextTimeout time.Duration
}

// NewSponsorService returns the sponsor listing service.
func NewSponsorService(sponsorRepo domain.SponsorRepository, timeout time.Duration) domain.SponsorService {
	return &sponsorService{sponsorRepo: sponsorRepo, contextTimeout: timeout}
}

func (s *sponsorService) ListSponsors(ctx context.Context, orgID *int) ([]*domain.Sponsor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		sponsors []*domain.Sponsor
		err      error
	)
	if orgID != nil {
		sponsors, err = s.sponsorRepo.ListByOrg(ctx, *orgID)
	} else {
		sponsors, err = s.sponsorRepo.ListAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	if sponsors == nil {
		sponsors = []*domain.Sponsor{}
	}
	return sponsors, nil
}
